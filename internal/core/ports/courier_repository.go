// Package ports defines repository interfaces for the order lifecycle core.
// These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"amigos/internal/core/domain/model/courier"
	"amigos/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
// Courier loads and saves must be serialized per courier by the adapter
// (row-level locking inside the surrounding transaction), since the active
// order count and the daily balances are read-modify-write fields.
type CourierRepository interface {
	// Add persists a new courier aggregate to storage.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Update persists changes to an existing courier aggregate, including
	// its daily balances.
	Update(ctx context.Context, aggregate *courier.Courier) error

	// Get retrieves a courier aggregate by its unique identifier. Inside a
	// transaction the row is locked for update.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)
}
