package queries

import (
	"errors"

	"amigos/internal/core/domain/model/kernel"
	"amigos/internal/pkg/errs"
	"amigos/internal/pkg/guard"
)

var ErrCalculateFeesQueryIsNotConstructed = errors.New(
	"CalculateFeesQuery must be created via NewCalculateFeesQuery constructor",
)

// CalculateFeesQuery runs the advanced fee reconciliation for one order:
// margin band top-up, course coverage, the derived delivery and app fees,
// and the resulting platform balance.
type CalculateFeesQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCalculateFeesQuery creates a fee reconciliation query.
func NewCalculateFeesQuery(orderID kernel.UUID) (CalculateFeesQuery, error) {
	query := CalculateFeesQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setOrderID(orderID); err != nil {
		return CalculateFeesQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q CalculateFeesQuery) Validate() error {
	return q.guard.Validate(ErrCalculateFeesQueryIsNotConstructed)
}

// OrderID returns the order to reconcile.
func (q CalculateFeesQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *CalculateFeesQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}

	q.orderID = orderID
	return nil
}

// CalculateFeesQueryResponse is the fee reconciliation read model.
// Baseline reports whether the margin and fee configuration could not be
// resolved and the balance degraded to the zero-deduction baseline.
type CalculateFeesQueryResponse struct {
	OrderID       kernel.UUID
	Margin        float64
	Frais1        float64
	Frais2        float64
	Frais3        float64
	Frais4        float64
	MargeNet      float64
	DeliveryFee   float64
	AppFee        float64
	PlatformSolde float64
	FinalAmount   float64
	Baseline      bool
}
