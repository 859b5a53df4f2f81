package ports

import (
	"context"
	"time"

	"amigos/internal/core/domain/model/kernel"
	"amigos/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Besides plain CRUD it exposes the two primitives the grouping pipeline
// depends on: a capped candidate scan and a conditional group-member write.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByIDs retrieves several orders at once, used to load a group's
	// members together. Returns an object-not-found error when any id is
	// missing.
	GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error)

	// GetGroupingCandidates retrieves pending, unassigned, ungrouped,
	// non-urgent orders of a groupable type created after the given
	// instant whose processing delay has elapsed, ordered oldest first
	// and capped at limit rows.
	GetGroupingCandidates(ctx context.Context, createdAfter time.Time, now time.Time, limit int) ([]*order.Order, error)

	// UpdateGroupMember persists an order's freshly formed group state
	// with a conditional write: the row is only touched while it is still
	// pending, unassigned and ungrouped. Returns a concurrency-conflict
	// error when the condition no longer holds, in which case nothing was
	// written.
	UpdateGroupMember(ctx context.Context, aggregate *order.Order) error

	// PromoteScheduled clears the deferred-processing fields of every
	// order whose scheduled instant has passed, returning how many rows
	// were promoted.
	PromoteScheduled(ctx context.Context, now time.Time) (int64, error)
}
