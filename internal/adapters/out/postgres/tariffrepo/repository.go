package tariffrepo

import (
	"context"
	"errors"
	"strconv"

	"amigos/internal/core/domain/model/tariff"
	"amigos/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTariffRepository implements TariffRepository using GORM. It reads
// straight off the connection pool; tariff tables are reference data and
// never join a write transaction.
type GormTariffRepository struct {
	db *gorm.DB
}

// NewGormTariffRepository creates a new GORM tariff repository.
func NewGormTariffRepository(db *gorm.DB) *GormTariffRepository {
	return &GormTariffRepository{db: db}
}

// GetCity retrieves a city's multiplier configuration by name.
func (r *GormTariffRepository) GetCity(ctx context.Context, name string) (*tariff.City, error) {
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}

	var dto CityDTO
	if err := r.db.WithContext(ctx).Preload("Zones").First(&dto, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("city", name)
		}
		return nil, err
	}

	return cityToDomain(dto)
}

// GetZone retrieves a pricing zone by number with its guarantee table.
func (r *GormTariffRepository) GetZone(ctx context.Context, number int) (*tariff.Zone, error) {
	var dto ZoneDTO
	if err := r.db.WithContext(ctx).Preload("Guarantees").First(&dto, "number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("zone", strconv.Itoa(number))
		}
		return nil, err
	}

	return zoneToDomain(dto)
}

// GetMarginConfig retrieves the margin configuration of a category.
func (r *GormTariffRepository) GetMarginConfig(
	ctx context.Context,
	category tariff.MarginCategory,
) (*tariff.MarginConfig, error) {
	if err := category.Validate(); err != nil {
		return nil, err
	}

	var dto MarginConfigDTO
	if err := r.db.WithContext(ctx).First(&dto, "category = ?", category.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("marginConfig", category.String())
		}
		return nil, err
	}

	return marginConfigToDomain(dto)
}

// GetAdditionalFees retrieves the active additional fee lines. An empty
// table yields a valid configuration that deducts nothing.
func (r *GormTariffRepository) GetAdditionalFees(ctx context.Context) (*tariff.AdditionalFees, error) {
	var dtos []FeeLineDTO
	if err := r.db.WithContext(ctx).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	lines := make([]tariff.FeeLine, 0, len(dtos))
	for _, dto := range dtos {
		line, err := feeLineToDomain(dto)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return tariff.NewAdditionalFees(lines)
}

// GetBonus retrieves the flat bonus configuration.
func (r *GormTariffRepository) GetBonus(ctx context.Context) (tariff.Bonus, error) {
	var dto BonusDTO
	if err := r.db.WithContext(ctx).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tariff.Bonus{}, errs.NewObjectNotFoundError("bonus", "configuration")
		}
		return tariff.Bonus{}, err
	}

	return tariff.Bonus{Amount: dto.Amount, Enabled: dto.Enabled}, nil
}
