package services

import (
	"amigos/internal/core/domain/model/kernel"
	"amigos/internal/core/domain/model/order"
	"amigos/internal/core/domain/model/tariff"
)

// RemunerationBreakdown is the full pricing of one order under a payment
// mode. PlatformRevenue is computed as ClientAmount minus PartnerPayout
// minus DelivererRemuneration, so the revenue identity holds for every
// mode by construction.
type RemunerationBreakdown struct {
	Mode                  tariff.PaymentMode
	MontantCourse         float64
	DelivererRemuneration float64
	PartnerPayout         float64
	ClientAmount          float64
	PlatformRevenue       float64
}

// RemunerationCalculator is a domain service computing courier remuneration
// and the per-mode pricing breakdown of an order.
//
// Business rules:
//   - the montant course is the zone's minimum guarantee for the order's
//     classification, scaled by the city multiplier
//   - the payment mode is derived from the order's attributes: urgent wins
//     over grouped, grouped over express, express over standard
//   - each mode applies its fixed multiplier triple to the remuneration,
//     the partner payout and the client price
type RemunerationCalculator struct{}

// NewRemunerationCalculator creates a new RemunerationCalculator instance.
func NewRemunerationCalculator() RemunerationCalculator {
	return RemunerationCalculator{}
}

// MontantCourse computes the base courier remuneration for an order:
// the city multiplier times the zone's minimum guarantee for the order's
// classification. Errors when the zone has no guarantee for that type.
func (r RemunerationCalculator) MontantCourse(
	o *order.Order,
	city *tariff.City,
	zone *tariff.Zone,
) (float64, error) {
	if err := o.Validate(); err != nil {
		return 0, err
	}
	if err := city.Validate(); err != nil {
		return 0, err
	}
	if err := zone.Validate(); err != nil {
		return 0, err
	}

	guarantee, err := zone.MinimumGuarantee(o.OrderType())
	if err != nil {
		return 0, err
	}

	return kernel.Round3(city.Multiplier() * guarantee), nil
}

// DeterminePaymentMode derives the pricing regime from the order's
// attributes. Urgency dominates, then grouping, then express/priority;
// everything else settles under the standard regime.
func (r RemunerationCalculator) DeterminePaymentMode(o *order.Order) tariff.PaymentMode {
	flags := o.OrderFlags()

	switch {
	case flags.Urgent || o.OrderType() == order.TypeA4:
		return tariff.Mode4
	case o.IsGrouped() || o.OrderType() == order.TypeA2 || o.OrderType() == order.TypeA3:
		return tariff.Mode3
	case flags.Express || flags.Priority:
		return tariff.Mode2
	default:
		return tariff.Mode1
	}
}

// Calculate prices an order under the given mode. Pass tariff.ModeUnknown
// to let the calculator derive the mode from the order itself. All amounts
// round to 3 decimals.
func (r RemunerationCalculator) Calculate(
	o *order.Order,
	city *tariff.City,
	zone *tariff.Zone,
	mode tariff.PaymentMode,
) (RemunerationBreakdown, error) {
	montantCourse, err := r.MontantCourse(o, city, zone)
	if err != nil {
		return RemunerationBreakdown{}, err
	}

	if mode == tariff.ModeUnknown {
		mode = r.DeterminePaymentMode(o)
	}
	if err := mode.Validate(); err != nil {
		return RemunerationBreakdown{}, err
	}

	multipliers := mode.Multipliers()
	totals := o.OrderTotals()

	remuneration := kernel.Round3(montantCourse * multipliers.Delivery)
	payout := kernel.Round3(totals.P1Total * multipliers.PartnerPayout)
	clientAmount := kernel.Round3(totals.P2Total * multipliers.ClientPrice)

	return RemunerationBreakdown{
		Mode:                  mode,
		MontantCourse:         montantCourse,
		DelivererRemuneration: remuneration,
		PartnerPayout:         payout,
		ClientAmount:          clientAmount,
		PlatformRevenue:       kernel.Round3(clientAmount - payout - remuneration),
	}, nil
}
