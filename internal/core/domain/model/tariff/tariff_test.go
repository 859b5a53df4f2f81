package tariff_test

import (
	"testing"

	"amigos/internal/core/domain/model/order"
	"amigos/internal/core/domain/model/tariff"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestZone(t *testing.T) *tariff.Zone {
	t.Helper()

	z, err := tariff.NewZone(2, 3.0, 6.0, 15.0, 2.0, map[order.Type]float64{
		order.TypeA1: 10.0,
		order.TypeA2: 16.0,
		order.TypeA3: 22.0,
		order.TypeA4: 14.0,
	})
	require.NoError(t, err)

	return z
}

func TestNewZone(t *testing.T) {
	t.Run("should create valid zone", func(t *testing.T) {
		z := newTestZone(t)

		require.NoError(t, z.Validate())
		assert.Equal(t, 2, z.Number())
		assert.InDelta(t, 3.0, z.MinKm(), 1e-9)
		assert.InDelta(t, 6.0, z.MaxKm(), 1e-9)
		assert.InDelta(t, 15.0, z.Price(), 1e-9)
		assert.InDelta(t, 2.0, z.PromoTariff(), 1e-9)
	})

	t.Run("should fail with inverted band", func(t *testing.T) {
		_, err := tariff.NewZone(1, 6.0, 3.0, 15.0, 0, map[order.Type]float64{order.TypeA1: 10})

		require.Error(t, err)
	})

	t.Run("should fail without guarantees", func(t *testing.T) {
		_, err := tariff.NewZone(1, 0, 3.0, 15.0, 0, nil)

		require.Error(t, err)
	})

	t.Run("should fail with a negative guarantee", func(t *testing.T) {
		_, err := tariff.NewZone(1, 0, 3.0, 15.0, 0, map[order.Type]float64{order.TypeA1: -1})

		require.Error(t, err)
	})
}

func TestZoneContains(t *testing.T) {
	z := newTestZone(t)

	assert.True(t, z.Contains(3.0))
	assert.True(t, z.Contains(5.999))
	assert.False(t, z.Contains(6.0)) // upper bound is exclusive
	assert.False(t, z.Contains(2.999))
}

func TestZoneMinimumGuarantee(t *testing.T) {
	z := newTestZone(t)

	t.Run("should return the guarantee for a known type", func(t *testing.T) {
		guarantee, err := z.MinimumGuarantee(order.TypeA2)

		require.NoError(t, err)
		assert.InDelta(t, 16.0, guarantee, 1e-9)
	})

	t.Run("should fail for a missing type", func(t *testing.T) {
		partial, err := tariff.NewZone(3, 0, 3.0, 15.0, 0, map[order.Type]float64{order.TypeA1: 10})
		require.NoError(t, err)

		_, err = partial.MinimumGuarantee(order.TypeA4)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestNewCity(t *testing.T) {
	t.Run("should create valid city", func(t *testing.T) {
		c, err := tariff.NewCity("Casablanca", 1.2, []int{1, 2, 3})

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.Equal(t, "Casablanca", c.Name())
		assert.InDelta(t, 1.2, c.Multiplier(), 1e-9)
		assert.True(t, c.HasZone(2))
		assert.False(t, c.HasZone(7))
		assert.Len(t, c.ZoneNumbers(), 3)
	})

	t.Run("should fail with empty name", func(t *testing.T) {
		_, err := tariff.NewCity("", 1.2, []int{1})

		require.Error(t, err)
	})

	t.Run("should fail with non-positive multiplier", func(t *testing.T) {
		_, err := tariff.NewCity("Casablanca", 0, []int{1})

		require.Error(t, err)
	})

	t.Run("should fail without zones", func(t *testing.T) {
		_, err := tariff.NewCity("Casablanca", 1.2, nil)

		require.Error(t, err)
	})
}

func TestCategoryFor(t *testing.T) {
	tests := []struct {
		orderType order.Type
		want      tariff.MarginCategory
	}{
		{order.TypeA1, tariff.CategoryC1},
		{order.TypeA2, tariff.CategoryC1},
		{order.TypeA3, tariff.CategoryC2},
		{order.TypeA4, tariff.CategoryC3},
	}

	for _, tt := range tests {
		t.Run(tt.orderType.String(), func(t *testing.T) {
			got, err := tariff.CategoryFor(tt.orderType)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("should fail for an unclassified order", func(t *testing.T) {
		_, err := tariff.CategoryFor(order.TypeUnspecified)

		require.Error(t, err)
	})
}

func TestNewMarginConfig(t *testing.T) {
	t.Run("should create valid config", func(t *testing.T) {
		m, err := tariff.NewMarginConfig(tariff.CategoryC1, 2.0, 1.0, 5.0)

		require.NoError(t, err)
		require.NoError(t, m.Validate())
		assert.Equal(t, tariff.CategoryC1, m.Category())
		assert.InDelta(t, 2.0, m.Margin(), 1e-9)
		assert.InDelta(t, 1.0, m.Minimum(), 1e-9)
		assert.InDelta(t, 5.0, m.Maximum(), 1e-9)
	})

	t.Run("should fail when minimum exceeds maximum", func(t *testing.T) {
		_, err := tariff.NewMarginConfig(tariff.CategoryC1, 2.0, 5.0, 1.0)

		require.Error(t, err)
	})

	t.Run("should fail with an invalid category", func(t *testing.T) {
		_, err := tariff.NewMarginConfig(tariff.CategoryUnknown, 2.0, 1.0, 5.0)

		require.Error(t, err)
	})
}

func TestAdditionalFees(t *testing.T) {
	t.Run("should sum lines applicable to a category", func(t *testing.T) {
		fees, err := tariff.NewAdditionalFees([]tariff.FeeLine{
			{Name: "service", Amount: 0.5},
			{Name: "packaging", Amount: 1.0, AppliesTo: []tariff.MarginCategory{tariff.CategoryC1}},
			{Name: "urgent surcharge", Amount: 2.0, AppliesTo: []tariff.MarginCategory{tariff.CategoryC3}},
		})
		require.NoError(t, err)

		assert.InDelta(t, 1.5, fees.TotalFor(tariff.CategoryC1), 1e-9)
		assert.InDelta(t, 0.5, fees.TotalFor(tariff.CategoryC2), 1e-9)
		assert.InDelta(t, 2.5, fees.TotalFor(tariff.CategoryC3), 1e-9)
	})

	t.Run("should accept an empty configuration", func(t *testing.T) {
		fees, err := tariff.NewAdditionalFees(nil)

		require.NoError(t, err)
		assert.Zero(t, fees.TotalFor(tariff.CategoryC1))
	})

	t.Run("should cap the number of lines", func(t *testing.T) {
		lines := make([]tariff.FeeLine, tariff.MaxFeeLines+1)
		for i := range lines {
			lines[i] = tariff.FeeLine{Name: "line", Amount: 1}
		}

		_, err := tariff.NewAdditionalFees(lines)

		require.Error(t, err)
	})

	t.Run("should reject a negative amount", func(t *testing.T) {
		_, err := tariff.NewAdditionalFees([]tariff.FeeLine{{Name: "bad", Amount: -1}})

		require.Error(t, err)
	})
}

func TestBonus(t *testing.T) {
	assert.InDelta(t, 1.5, tariff.Bonus{Amount: 1.5, Enabled: true}.Value(), 1e-9)
	assert.Zero(t, tariff.Bonus{Amount: 1.5, Enabled: false}.Value())
}

func TestPaymentModeMultipliers(t *testing.T) {
	tests := []struct {
		mode     tariff.PaymentMode
		expected tariff.Multipliers
	}{
		{tariff.Mode1, tariff.Multipliers{Delivery: 1.0, PartnerPayout: 1.0, ClientPrice: 1.0}},
		{tariff.Mode2, tariff.Multipliers{Delivery: 1.3, PartnerPayout: 1.1, ClientPrice: 1.15}},
		{tariff.Mode3, tariff.Multipliers{Delivery: 0.85, PartnerPayout: 0.95, ClientPrice: 0.9}},
		{tariff.Mode4, tariff.Multipliers{Delivery: 1.7, PartnerPayout: 1.2, ClientPrice: 1.25}},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			require.NoError(t, tt.mode.Validate())
			assert.Equal(t, tt.expected, tt.mode.Multipliers())
		})
	}

	t.Run("should reject the zero mode", func(t *testing.T) {
		require.Error(t, tariff.ModeUnknown.Validate())
	})
}
