package queries

import (
	"errors"
	"time"

	"amigos/internal/core/domain/model/kernel"
	"amigos/internal/pkg/guard"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery retrieves every order that has not yet reached a
// terminal state, for active workload visibility.
type GetActiveOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query to retrieve all active orders.
func NewGetActiveOrdersQuery() GetActiveOrdersQuery {
	return GetActiveOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// GetActiveOrdersQueryResponse is the active-order read model.
type GetActiveOrdersQueryResponse struct {
	ID        kernel.UUID
	Status    string
	OrderType string
	City      string
	CourierID *kernel.UUID
	IsGrouped bool
	P2Total   float64
	CreatedAt time.Time
}
