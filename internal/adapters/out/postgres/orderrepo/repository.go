package orderrepo

import (
	"context"
	"errors"
	"time"

	"amigos/internal/core/domain/model/kernel"
	"amigos/internal/core/domain/model/order"
	"amigos/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order and its lines to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database. Lines are immutable after
// creation, so only the order row is written. All columns are written, since
// lifecycle transitions routinely reset fields to their zero values.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("Items", "id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID with its lines.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).Preload("Items").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByIDs retrieves several orders at once. Returns an object-not-found
// error when any requested id is missing.
func (r *GormOrderRepository) GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error) {
	if len(ids) == 0 {
		return nil, errs.NewValueIsRequiredError("ids")
	}

	rawIDs := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		rawIDs = append(rawIDs, id.Bytes())
	}

	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Preload("Items").Find(&dtos, "id IN ?", rawIDs).Error; err != nil {
		return nil, err
	}

	if len(dtos) != len(ids) {
		found := make(map[uuid.UUID]struct{}, len(dtos))
		for _, dto := range dtos {
			found[dto.ID] = struct{}{}
		}
		for _, raw := range rawIDs {
			if _, ok := found[raw]; !ok {
				return nil, errs.NewObjectNotFoundError("order", raw.String())
			}
		}
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// GetGroupingCandidates retrieves pending, unassigned, ungrouped, non-urgent
// orders created after the given instant whose processing delay has elapsed,
// oldest first, capped at limit rows.
func (r *GormOrderRepository) GetGroupingCandidates(
	ctx context.Context,
	createdAfter time.Time,
	now time.Time,
	limit int,
) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("status = ?", order.StatusPending.String()).
		Where("courier_id IS NULL").
		Where("is_grouped = ?", false).
		Where("urgent = ?", false).
		Where("can_be_grouped = ?", true).
		Where("order_type IN ?", []string{
			order.TypeA1.String(), order.TypeA2.String(), order.TypeA3.String(),
		}).
		Where("created_at > ?", createdAfter).
		Where("scheduled_for IS NULL OR scheduled_for <= ?", now).
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, toErr := toDomain(dto)
		if toErr != nil {
			return nil, toErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// UpdateGroupMember persists an order's freshly formed group state with a
// conditional write: the row is only touched while it is still pending,
// unassigned and ungrouped. A concurrent acceptance or a competing grouping
// run makes the condition fail, and a concurrency-conflict error is returned
// with nothing written.
func (r *GormOrderRepository) UpdateGroupMember(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ? AND courier_id IS NULL AND is_grouped = ?",
			dto.ID, order.StatusPending.String(), false).
		Updates(map[string]any{
			"is_grouped":  dto.IsGrouped,
			"group_peers": dto.GroupPeers,
			"group_solde": dto.GroupSolde,
			"order_type":  dto.OrderType,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConcurrencyConflictError("order", 1, result.RowsAffected)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// PromoteScheduled clears the deferred-processing fields of every order whose
// scheduled instant has passed, returning how many rows were promoted.
func (r *GormOrderRepository) PromoteScheduled(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("scheduled_for IS NOT NULL AND scheduled_for <= ?", now).
		Updates(map[string]any{
			"scheduled_for":    nil,
			"processing_delay": 0,
		})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
