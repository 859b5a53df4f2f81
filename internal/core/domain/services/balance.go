package services

import (
	"amigos/internal/core/domain/model/kernel"
	"amigos/internal/core/domain/model/order"
	"amigos/internal/core/domain/model/tariff"
)

// BalanceInputs collects what the platform balance of one order depends on.
// Margin, AdditionalFees and Bonus come from the active configuration; the
// caller substitutes the zero baseline when that configuration cannot be
// resolved.
type BalanceInputs struct {
	ClientPrice    float64
	Payout         float64
	DeliveryFee    float64
	AppFee         float64
	Margin         float64
	AdditionalFees float64
	Bonus          float64
}

// BalanceCalculator is a domain service computing the platform's balances.
//
// soldeSimple is what the platform nets before fee reconciliation; the
// group solde is the sum of the members' simple soldes; platformSolde is
// the final per-order balance after margins, additional fees and bonus.
type BalanceCalculator struct{}

// NewBalanceCalculator creates a new BalanceCalculator instance.
func NewBalanceCalculator() BalanceCalculator {
	return BalanceCalculator{}
}

// SoldeSimple is the client price minus the partner payout.
func (b BalanceCalculator) SoldeSimple(clientPrice, payout float64) float64 {
	return kernel.Round3(clientPrice - payout)
}

// GroupSolde sums the simple soldes of a group's members.
func (b BalanceCalculator) GroupSolde(members []*order.Order) float64 {
	var solde float64
	for _, member := range members {
		solde += member.SoldeSimple()
	}
	return kernel.Round3(solde)
}

// PlatformSolde is the final per-order balance:
// (clientPrice - payout + deliveryFee + appFee) - (margin + additionalFees) + bonus.
func (b BalanceCalculator) PlatformSolde(in BalanceInputs) float64 {
	gross := in.ClientPrice - in.Payout + in.DeliveryFee + in.AppFee
	deductions := in.Margin + in.AdditionalFees
	return kernel.Round3(gross - deductions + in.Bonus)
}

// BaselineInputs strips the configured deductions from the inputs, keeping
// only the raw amounts. Used when margin or fee configuration cannot be
// resolved: the balance then degrades to the zero-deduction baseline
// instead of failing.
func (b BalanceCalculator) BaselineInputs(in BalanceInputs) BalanceInputs {
	return BalanceInputs{
		ClientPrice: in.ClientPrice,
		Payout:      in.Payout,
		DeliveryFee: in.DeliveryFee,
		AppFee:      in.AppFee,
	}
}

// InputsFromConfig assembles balance inputs from an order's resolved
// configuration for the given margin category.
func (b BalanceCalculator) InputsFromConfig(
	o *order.Order,
	category tariff.MarginCategory,
	margin *tariff.MarginConfig,
	fees *tariff.AdditionalFees,
	bonus tariff.Bonus,
) BalanceInputs {
	totals := o.OrderTotals()

	return BalanceInputs{
		ClientPrice:    totals.P2Total,
		Payout:         totals.P1Total,
		DeliveryFee:    totals.DeliveryFee,
		AppFee:         totals.AppFee,
		Margin:         margin.Margin(),
		AdditionalFees: fees.TotalFor(category),
		Bonus:          bonus.Value(),
	}
}
