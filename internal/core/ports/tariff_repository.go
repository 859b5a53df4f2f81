package ports

import (
	"context"

	"amigos/internal/core/domain/model/tariff"
)

// TariffRepository defines the read contract for pricing configuration.
// Configuration is read outside of write transactions; lookups return an
// object-not-found error for missing entries, which callers of the balance
// path degrade to the zero baseline instead of failing.
type TariffRepository interface {
	// GetCity retrieves a city's multiplier configuration by name.
	GetCity(ctx context.Context, name string) (*tariff.City, error)

	// GetZone retrieves a pricing zone by number.
	GetZone(ctx context.Context, number int) (*tariff.Zone, error)

	// GetMarginConfig retrieves the margin configuration of a category.
	GetMarginConfig(ctx context.Context, category tariff.MarginCategory) (*tariff.MarginConfig, error)

	// GetAdditionalFees retrieves the active additional fee lines.
	GetAdditionalFees(ctx context.Context) (*tariff.AdditionalFees, error)

	// GetBonus retrieves the flat bonus configuration.
	GetBonus(ctx context.Context) (tariff.Bonus, error)
}
