package cancellationrepo

import (
	"context"
	"errors"
	"time"

	"amigos/internal/core/domain/model/cancellation"
	"amigos/internal/core/domain/model/kernel"
	"amigos/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCancellationRepository implements CancellationRepository using GORM.
type GormCancellationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCancellationRepository creates a new GORM cancellation repository.
func NewGormCancellationRepository(db *gorm.DB, tracker aggregateTracker) *GormCancellationRepository {
	return &GormCancellationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add appends a cancellation record.
func (r *GormCancellationRepository) Add(ctx context.Context, record *cancellation.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(record.ID(), record)
	return nil
}

// GetByOrderID retrieves the record written for an order, if any.
func (r *GormCancellationRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*cancellation.Record, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto RecordDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cancellationRecord", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListByCourierAndDay retrieves a courier's records for one UTC calendar
// day, oldest first.
func (r *GormCancellationRepository) ListByCourierAndDay(ctx context.Context, courierID kernel.UUID, day time.Time) ([]*cancellation.Record, error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	var dtos []RecordDTO
	err := r.db.WithContext(ctx).
		Where("courier_id = ?", courierID.Bytes()).
		Where("occurred_at >= ? AND occurred_at < ?", dayStart, dayEnd).
		Order("occurred_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]*cancellation.Record, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}
