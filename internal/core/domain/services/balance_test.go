package services_test

import (
	"testing"

	"amigos/internal/core/domain/model/order"
	"amigos/internal/core/domain/model/tariff"
	"amigos/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSoldeSimple(t *testing.T) {
	calc := services.NewBalanceCalculator()

	assert.InDelta(t, 5.0, calc.SoldeSimple(20, 15), 1e-9)
	assert.InDelta(t, -2.5, calc.SoldeSimple(10, 12.5), 1e-9)
}

func TestGroupSolde(t *testing.T) {
	calc := services.NewBalanceCalculator()
	flags := order.Flags{CanBeGrouped: true}

	a := newOrderAt(t, casablancaPoint(t, 0), casablancaPoint(t, 10), flags)
	b := newOrderAt(t, casablancaPoint(t, 1), casablancaPoint(t, 11), flags)

	solde := calc.GroupSolde([]*order.Order{a, b})

	assert.InDelta(t, a.SoldeSimple()+b.SoldeSimple(), solde, 1e-9)
}

func TestPlatformSolde(t *testing.T) {
	calc := services.NewBalanceCalculator()

	t.Run("should compute the configured balance", func(t *testing.T) {
		solde := calc.PlatformSolde(services.BalanceInputs{
			ClientPrice:    20,
			Payout:         15,
			DeliveryFee:    3,
			AppFee:         1,
			Margin:         2,
			AdditionalFees: 0.5,
			Bonus:          0,
		})

		assert.InDelta(t, 6.5, solde, 1e-9)
	})

	t.Run("should credit the bonus", func(t *testing.T) {
		solde := calc.PlatformSolde(services.BalanceInputs{
			ClientPrice: 20,
			Payout:      15,
			DeliveryFee: 3,
			AppFee:      1,
			Bonus:       1.5,
		})

		assert.InDelta(t, 10.5, solde, 1e-9)
	})
}

func TestBaselineInputs(t *testing.T) {
	calc := services.NewBalanceCalculator()

	in := services.BalanceInputs{
		ClientPrice:    20,
		Payout:         15,
		DeliveryFee:    3,
		AppFee:         1,
		Margin:         2,
		AdditionalFees: 0.5,
		Bonus:          1.5,
	}

	baseline := calc.BaselineInputs(in)

	assert.Zero(t, baseline.Margin)
	assert.Zero(t, baseline.AdditionalFees)
	assert.Zero(t, baseline.Bonus)
	assert.InDelta(t, 9.0, calc.PlatformSolde(baseline), 1e-9)
}

func TestInputsFromConfig(t *testing.T) {
	calc := services.NewBalanceCalculator()
	flags := order.Flags{CanBeGrouped: true}
	o := newOrderAt(t, casablancaPoint(t, 0), casablancaPoint(t, 10), flags)
	o.ApplySettlement(3, 1, 0, 0)

	margin, err := tariff.NewMarginConfig(tariff.CategoryC1, 2.0, 1.0, 5.0)
	require.NoError(t, err)
	fees, err := tariff.NewAdditionalFees([]tariff.FeeLine{{Name: "service", Amount: 0.5}})
	require.NoError(t, err)

	in := calc.InputsFromConfig(o, tariff.CategoryC1, margin, fees, tariff.Bonus{Amount: 1, Enabled: false})

	assert.InDelta(t, 15.0, in.ClientPrice, 1e-9)
	assert.InDelta(t, 10.0, in.Payout, 1e-9)
	assert.InDelta(t, 3.0, in.DeliveryFee, 1e-9)
	assert.InDelta(t, 1.0, in.AppFee, 1e-9)
	assert.InDelta(t, 2.0, in.Margin, 1e-9)
	assert.InDelta(t, 0.5, in.AdditionalFees, 1e-9)
	assert.Zero(t, in.Bonus)
}
