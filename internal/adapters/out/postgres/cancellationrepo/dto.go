// Package cancellationrepo persists cancellation records with GORM. The
// store is append-only; rows are never updated or deleted.
package cancellationrepo

import (
	"time"

	"amigos/internal/core/domain/model/cancellation"
	"amigos/internal/core/domain/model/kernel"
	"amigos/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// RecordDTO represents the database structure for persisting cancellation
// records. occurred_at is indexed for the daily mass aggregation.
type RecordDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	CourierID   *uuid.UUID `gorm:"type:uuid;index"`
	Type        string     `gorm:"type:varchar(16);not null"`
	Solde       float64    `gorm:"not null"`
	PaymentMode string     `gorm:"type:varchar(16);not null"`
	Reason      string     `gorm:"type:text;not null"`
	OccurredAt  time.Time  `gorm:"not null;index"`
}

// TableName specifies the database table name for cancellation records.
func (RecordDTO) TableName() string {
	return "cancellation_records"
}

// fromDomain converts a cancellation record to its database representation.
func fromDomain(record *cancellation.Record) RecordDTO {
	var courierID *uuid.UUID
	if id := record.CourierID(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	return RecordDTO{
		ID:          record.ID().Bytes(),
		OrderID:     record.OrderID().Bytes(),
		CourierID:   courierID,
		Type:        record.Type().String(),
		Solde:       record.Solde(),
		PaymentMode: record.PaymentMode().String(),
		Reason:      record.Reason(),
		OccurredAt:  record.OccurredAt(),
	}
}

// toDomain converts a database DTO to a cancellation record using NewRecord.
func toDomain(dto RecordDTO) (*cancellation.Record, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	ctype, err := order.CancellationTypeFromString(dto.Type)
	if err != nil {
		return nil, err
	}
	paymentMode, err := order.PaymentModeFromString(dto.PaymentMode)
	if err != nil {
		return nil, err
	}

	return cancellation.NewRecord(id, orderID, courierID, ctype, dto.Solde, paymentMode, dto.Reason, dto.OccurredAt)
}
