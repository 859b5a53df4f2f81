package ports

import (
	"context"
	"time"

	"amigos/internal/core/domain/model/cancellation"
	"amigos/internal/core/domain/model/kernel"
)

// CancellationRepository defines the persistence contract for cancellation
// records. The store is append-only; records are never updated or deleted.
type CancellationRepository interface {
	// Add appends a cancellation record.
	Add(ctx context.Context, record *cancellation.Record) error

	// GetByOrderID retrieves the record written for an order, if any.
	// Returns an object-not-found error when the order was never recorded.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*cancellation.Record, error)

	// ListByCourierAndDay retrieves a courier's records for one UTC
	// calendar day, oldest first. An empty day is not an error.
	ListByCourierAndDay(ctx context.Context, courierID kernel.UUID, day time.Time) ([]*cancellation.Record, error)
}
