// Package clientrepo persists client aggregates with GORM.
package clientrepo

import (
	"time"

	"amigos/internal/core/domain/model/client"
	"amigos/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ClientDTO represents the database structure for persisting client
// aggregates, including the blocking state written by admin-forced
// cancellations.
type ClientDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"type:varchar(255);not null"`
	IsBlocked     bool      `gorm:"not null"`
	BlockedReason string    `gorm:"type:text;not null"`
	BlockedAt     *time.Time
}

// TableName specifies the database table name for client entities.
func (ClientDTO) TableName() string {
	return "clients"
}

// fromDomain converts a client domain aggregate to its database
// representation.
func fromDomain(aggregate *client.Client) ClientDTO {
	return ClientDTO{
		ID:            aggregate.ID().Bytes(),
		Name:          aggregate.Name(),
		IsBlocked:     aggregate.IsBlocked(),
		BlockedReason: aggregate.BlockedReason(),
		BlockedAt:     aggregate.BlockedAt(),
	}
}

// toDomain converts a database DTO to a client domain aggregate using
// RestoreClient.
func toDomain(dto ClientDTO) (*client.Client, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return client.RestoreClient(id, dto.Name, dto.IsBlocked, dto.BlockedReason, dto.BlockedAt)
}
