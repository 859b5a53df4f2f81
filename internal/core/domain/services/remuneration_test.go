package services_test

import (
	"testing"
	"time"

	"amigos/internal/core/domain/model/kernel"
	"amigos/internal/core/domain/model/order"
	"amigos/internal/core/domain/model/tariff"
	"amigos/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPricedOrder(t *testing.T, flags order.Flags) *order.Order {
	t.Helper()
	return newOrderAt(t, casablancaPoint(t, 0), casablancaPoint(t, 10), flags)
}

func newTestTariffs(t *testing.T) (*tariff.City, *tariff.Zone) {
	t.Helper()

	city, err := tariff.NewCity("Casablanca", 1.2, []int{1, 2})
	require.NoError(t, err)

	zone, err := tariff.NewZone(1, 0, 6.0, 15.0, 2.0, map[order.Type]float64{
		order.TypeA1: 10.0,
		order.TypeA2: 16.0,
		order.TypeA3: 22.0,
		order.TypeA4: 14.0,
	})
	require.NoError(t, err)

	return city, zone
}

func TestMontantCourse(t *testing.T) {
	calc := services.NewRemunerationCalculator()
	city, zone := newTestTariffs(t)

	t.Run("should scale the guarantee by the city multiplier", func(t *testing.T) {
		o := newPricedOrder(t, order.Flags{CanBeGrouped: true})

		course, err := calc.MontantCourse(o, city, zone)

		require.NoError(t, err)
		assert.InDelta(t, 12.0, course, 1e-9) // 1.2 * 10 for an A1
	})

	t.Run("should use the guarantee of the order's classification", func(t *testing.T) {
		o := newPricedOrder(t, order.Flags{Urgent: true})

		course, err := calc.MontantCourse(o, city, zone)

		require.NoError(t, err)
		assert.InDelta(t, 16.8, course, 1e-9) // 1.2 * 14 for an A4
	})

	t.Run("should fail when the zone has no guarantee for the type", func(t *testing.T) {
		partial, err := tariff.NewZone(9, 0, 6.0, 15.0, 0, map[order.Type]float64{order.TypeA1: 10})
		require.NoError(t, err)
		o := newPricedOrder(t, order.Flags{Urgent: true})

		_, err = calc.MontantCourse(o, city, partial)

		require.Error(t, err)
	})
}

func TestDeterminePaymentMode(t *testing.T) {
	calc := services.NewRemunerationCalculator()
	now := time.Date(2025, 3, 10, 12, 5, 0, 0, time.UTC)

	t.Run("should pick Mode_4 for urgent orders", func(t *testing.T) {
		o := newPricedOrder(t, order.Flags{Urgent: true})

		assert.Equal(t, tariff.Mode4, calc.DeterminePaymentMode(o))
	})

	t.Run("should pick Mode_3 for grouped orders", func(t *testing.T) {
		o := newPricedOrder(t, order.Flags{CanBeGrouped: true})
		require.NoError(t, o.FormGroup([]kernel.UUID{kernel.NewUUID()}, order.TypeA2, 5, now))

		assert.Equal(t, tariff.Mode3, calc.DeterminePaymentMode(o))
	})

	t.Run("should pick Mode_2 for express or priority orders", func(t *testing.T) {
		express := newPricedOrder(t, order.Flags{Express: true})
		priority := newPricedOrder(t, order.Flags{Priority: true})

		assert.Equal(t, tariff.Mode2, calc.DeterminePaymentMode(express))
		assert.Equal(t, tariff.Mode2, calc.DeterminePaymentMode(priority))
	})

	t.Run("should default to Mode_1", func(t *testing.T) {
		o := newPricedOrder(t, order.Flags{CanBeGrouped: true})

		assert.Equal(t, tariff.Mode1, calc.DeterminePaymentMode(o))
	})

	t.Run("should let urgency dominate express", func(t *testing.T) {
		o := newPricedOrder(t, order.Flags{Urgent: true, Express: true})

		assert.Equal(t, tariff.Mode4, calc.DeterminePaymentMode(o))
	})
}

func TestRemunerationCalculate(t *testing.T) {
	calc := services.NewRemunerationCalculator()
	city, zone := newTestTariffs(t)

	t.Run("should derive the mode when not forced", func(t *testing.T) {
		o := newPricedOrder(t, order.Flags{CanBeGrouped: true})

		breakdown, err := calc.Calculate(o, city, zone, tariff.ModeUnknown)

		require.NoError(t, err)
		assert.Equal(t, tariff.Mode1, breakdown.Mode)
		assert.InDelta(t, 12.0, breakdown.MontantCourse, 1e-9)
		assert.InDelta(t, 12.0, breakdown.DelivererRemuneration, 1e-9)
		assert.InDelta(t, 10.0, breakdown.PartnerPayout, 1e-9)
		assert.InDelta(t, 15.0, breakdown.ClientAmount, 1e-9)
	})

	t.Run("should apply the multiplier triple of a forced mode", func(t *testing.T) {
		o := newPricedOrder(t, order.Flags{CanBeGrouped: true})

		breakdown, err := calc.Calculate(o, city, zone, tariff.Mode2)

		require.NoError(t, err)
		assert.Equal(t, tariff.Mode2, breakdown.Mode)
		assert.InDelta(t, 15.6, breakdown.DelivererRemuneration, 1e-9) // 12 * 1.3
		assert.InDelta(t, 11.0, breakdown.PartnerPayout, 1e-9)         // 10 * 1.1
		assert.InDelta(t, 17.25, breakdown.ClientAmount, 1e-9)         // 15 * 1.15
	})

	t.Run("should hold the revenue identity for every mode", func(t *testing.T) {
		o := newPricedOrder(t, order.Flags{CanBeGrouped: true})

		for _, mode := range []tariff.PaymentMode{tariff.Mode1, tariff.Mode2, tariff.Mode3, tariff.Mode4} {
			breakdown, err := calc.Calculate(o, city, zone, mode)
			require.NoError(t, err)

			identity := breakdown.ClientAmount - breakdown.PartnerPayout - breakdown.DelivererRemuneration
			assert.InDelta(t, identity, breakdown.PlatformRevenue, 1e-9, mode.String())
		}
	})
}
