// Package tariffrepo reads pricing configuration with GORM. The tables are
// reference data maintained by operations; the adapter only ever reads them,
// outside of write transactions.
package tariffrepo

import (
	"strings"

	"amigos/internal/core/domain/model/order"
	"amigos/internal/core/domain/model/tariff"
)

// CityDTO represents a city's multiplier configuration.
type CityDTO struct {
	Name       string        `gorm:"type:varchar(255);primaryKey"`
	Multiplier float64       `gorm:"not null"`
	Zones      []CityZoneDTO `gorm:"foreignKey:CityName;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for city entities.
func (CityDTO) TableName() string {
	return "tariff_cities"
}

// CityZoneDTO links a city to one of its active zone numbers.
type CityZoneDTO struct {
	CityName   string `gorm:"type:varchar(255);primaryKey"`
	ZoneNumber int    `gorm:"primaryKey"`
}

// TableName specifies the database table name for city zone links.
func (CityZoneDTO) TableName() string {
	return "tariff_city_zones"
}

// ZoneDTO represents a pricing zone with its distance band.
type ZoneDTO struct {
	Number      int            `gorm:"primaryKey"`
	MinKm       float64        `gorm:"not null"`
	MaxKm       float64        `gorm:"not null"`
	Price       float64        `gorm:"not null"`
	PromoTariff float64        `gorm:"not null"`
	Guarantees  []GuaranteeDTO `gorm:"foreignKey:ZoneNumber;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for zone entities.
func (ZoneDTO) TableName() string {
	return "tariff_zones"
}

// GuaranteeDTO represents one per-order-type minimum guarantee of a zone.
type GuaranteeDTO struct {
	ZoneNumber int     `gorm:"primaryKey"`
	OrderType  string  `gorm:"type:varchar(4);primaryKey"`
	Amount     float64 `gorm:"not null"`
}

// TableName specifies the database table name for zone guarantees.
func (GuaranteeDTO) TableName() string {
	return "tariff_zone_guarantees"
}

// MarginConfigDTO represents the margin configuration of one category.
type MarginConfigDTO struct {
	Category string  `gorm:"type:varchar(4);primaryKey"`
	Margin   float64 `gorm:"not null"`
	Minimum  float64 `gorm:"not null"`
	Maximum  float64 `gorm:"not null"`
}

// TableName specifies the database table name for margin configurations.
func (MarginConfigDTO) TableName() string {
	return "tariff_margin_configs"
}

// FeeLineDTO represents one named deduction. AppliesTo holds a
// comma-separated category list, empty meaning every category.
type FeeLineDTO struct {
	ID        int64   `gorm:"primaryKey;autoIncrement"`
	Name      string  `gorm:"type:varchar(255);not null"`
	Amount    float64 `gorm:"not null"`
	AppliesTo string  `gorm:"type:varchar(32);not null"`
}

// TableName specifies the database table name for additional fee lines.
func (FeeLineDTO) TableName() string {
	return "tariff_additional_fees"
}

// BonusDTO represents the single-row flat bonus configuration.
type BonusDTO struct {
	ID      int64   `gorm:"primaryKey"`
	Amount  float64 `gorm:"not null"`
	Enabled bool    `gorm:"not null"`
}

// TableName specifies the database table name for the bonus configuration.
func (BonusDTO) TableName() string {
	return "tariff_bonus"
}

func cityToDomain(dto CityDTO) (*tariff.City, error) {
	zoneNumbers := make([]int, 0, len(dto.Zones))
	for _, zone := range dto.Zones {
		zoneNumbers = append(zoneNumbers, zone.ZoneNumber)
	}

	return tariff.NewCity(dto.Name, dto.Multiplier, zoneNumbers)
}

func zoneToDomain(dto ZoneDTO) (*tariff.Zone, error) {
	guarantees := make(map[order.Type]float64, len(dto.Guarantees))
	for _, guarantee := range dto.Guarantees {
		orderType, err := order.TypeFromString(guarantee.OrderType)
		if err != nil {
			return nil, err
		}
		guarantees[orderType] = guarantee.Amount
	}

	return tariff.NewZone(dto.Number, dto.MinKm, dto.MaxKm, dto.Price, dto.PromoTariff, guarantees)
}

func marginConfigToDomain(dto MarginConfigDTO) (*tariff.MarginConfig, error) {
	category, err := tariff.CategoryFromString(dto.Category)
	if err != nil {
		return nil, err
	}

	return tariff.NewMarginConfig(category, dto.Margin, dto.Minimum, dto.Maximum)
}

func feeLineToDomain(dto FeeLineDTO) (tariff.FeeLine, error) {
	var appliesTo []tariff.MarginCategory
	if dto.AppliesTo != "" {
		for _, name := range strings.Split(dto.AppliesTo, ",") {
			category, err := tariff.CategoryFromString(strings.TrimSpace(name))
			if err != nil {
				return tariff.FeeLine{}, err
			}
			appliesTo = append(appliesTo, category)
		}
	}

	return tariff.FeeLine{
		Name:      dto.Name,
		Amount:    dto.Amount,
		AppliesTo: appliesTo,
	}, nil
}
