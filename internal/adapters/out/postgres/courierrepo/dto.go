// Package courierrepo persists courier aggregates with GORM. A courier maps
// to a "couriers" row plus one "courier_daily_balances" row per accumulated
// day.
package courierrepo

import (
	"time"

	"amigos/internal/core/domain/model/courier"
	"amigos/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting courier
// aggregates.
type CourierDTO struct {
	ID           uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Name         string            `gorm:"type:varchar(255);not null"`
	Status       string            `gorm:"type:varchar(16);not null"`
	ActiveOrders int               `gorm:"not null"`
	Balances     []DailyBalanceDTO `gorm:"foreignKey:CourierID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for courier entities.
func (CourierDTO) TableName() string {
	return "couriers"
}

// DailyBalanceDTO represents one per-day balance row. The (courier, day)
// pair is the natural key; accruals rewrite the row in place.
type DailyBalanceDTO struct {
	CourierID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Day             time.Time `gorm:"primaryKey"`
	SoldeAmigos     float64   `gorm:"not null"`
	SoldeAnnulation float64   `gorm:"not null"`
	Paid            bool      `gorm:"not null"`
}

// TableName specifies the database table name for daily balance entities.
func (DailyBalanceDTO) TableName() string {
	return "courier_daily_balances"
}

// fromDomain converts a courier domain aggregate to its database
// representation, balances included.
func fromDomain(aggregate *courier.Courier) CourierDTO {
	courierID := aggregate.ID().Bytes()

	balances := aggregate.DailyBalances()
	balanceDTOs := make([]DailyBalanceDTO, 0, len(balances))
	for _, balance := range balances {
		balanceDTOs = append(balanceDTOs, DailyBalanceDTO{
			CourierID:       courierID,
			Day:             balance.Day,
			SoldeAmigos:     balance.SoldeAmigos,
			SoldeAnnulation: balance.SoldeAnnulation,
			Paid:            balance.Paid,
		})
	}

	return CourierDTO{
		ID:           courierID,
		Name:         aggregate.Name(),
		Status:       aggregate.Status().String(),
		ActiveOrders: aggregate.ActiveOrders(),
		Balances:     balanceDTOs,
	}
}

// toDomain converts a database DTO to a courier domain aggregate using
// RestoreCourier.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := courier.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	balances := make([]courier.DailyBalance, 0, len(dto.Balances))
	for _, balanceDTO := range dto.Balances {
		balances = append(balances, courier.DailyBalance{
			Day:             balanceDTO.Day,
			SoldeAmigos:     balanceDTO.SoldeAmigos,
			SoldeAnnulation: balanceDTO.SoldeAnnulation,
			Paid:            balanceDTO.Paid,
		})
	}

	return courier.RestoreCourier(id, dto.Name, status, dto.ActiveOrders, balances)
}
