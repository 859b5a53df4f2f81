package services

import (
	"math"

	"amigos/internal/core/domain/model/kernel"
)

// FeeInputs are the scalar inputs of the advanced fee calculation.
//
//   - ClientPrice and Payout set the raw margin M = ClientPrice - Payout
//   - MinBound and MaxBound come from the order's margin configuration
//   - MontantCourse is the courier remuneration computed for the order
//   - PromoTariff is the order's zone promo tariff
//   - TotalAmount is the amount actually charged, including surcharges
//   - FloorFee is the configured floor applied to zero-price orders
type FeeInputs struct {
	ClientPrice   float64
	Payout        float64
	TotalAmount   float64
	MinBound      float64
	MaxBound      float64
	MontantCourse float64
	PromoTariff   float64
	FloorFee      float64
}

// FeeBreakdown is the step-by-step result of the advanced fee calculation,
// with every amount rounded to 3 decimals.
type FeeBreakdown struct {
	Margin      float64
	Frais1      float64
	Frais2      float64
	Frais3      float64
	Frais4      float64
	MargeNet    float64
	DeliveryFee float64
	AppFee      float64
}

// FeeCalculator is a domain service running the seven-step fee
// reconciliation that splits an order's raw margin into a delivery fee and
// an application fee. Each step is a pure function of scalars, exported so
// it can be exercised on its own.
type FeeCalculator struct{}

// NewFeeCalculator creates a new FeeCalculator instance.
func NewFeeCalculator() FeeCalculator {
	return FeeCalculator{}
}

// Frais1 tops the margin up into its configured band: 0 when M already sits
// in [min, max], the shortfall (min - M) when M is below, and min when M
// overshoots.
func (f FeeCalculator) Frais1(m, minBound, maxBound float64) float64 {
	switch {
	case m >= minBound && m <= maxBound:
		return 0
	case m < minBound:
		return kernel.Round3(minBound - m)
	default:
		return kernel.Round3(minBound)
	}
}

// Frais2 is the absolute gap between the topped-up margin plus promo tariff
// and the montant course.
func (f FeeCalculator) Frais2(m, frais1, promoTariff, montantCourse float64) float64 {
	return kernel.Round3(math.Abs(m + frais1 + promoTariff - montantCourse))
}

// Frais3 is the part of the montant course not covered by what the client
// actually paid above the payout, floored at 0.
func (f FeeCalculator) Frais3(montantCourse, totalAmount, payout float64) float64 {
	return kernel.Round3(math.Max(0, montantCourse-(totalAmount-payout)))
}

// Frais4 is the configured floor fee, charged only on zero-price orders.
func (f FeeCalculator) Frais4(clientPrice, floorFee float64) float64 {
	if clientPrice == 0 {
		return kernel.Round3(floorFee)
	}
	return 0
}

// MargeNet is the platform's net margin after covering the montant course:
// M + FRAIS_1 + promo tariff - montant course. Unlike Frais2 it keeps its
// sign; a negative value means the course is not covered.
func (f FeeCalculator) MargeNet(m, frais1, promoTariff, montantCourse float64) float64 {
	return kernel.Round3(m + frais1 + promoTariff - montantCourse)
}

// DeliveryFee selects the delivery fee: the top-up plus promo tariff when
// the net margin is positive, otherwise the gap plus promo tariff.
func (f FeeCalculator) DeliveryFee(frais1, frais2, promoTariff, margeNet float64) float64 {
	if margeNet > 0 {
		return kernel.Round3(frais1 + promoTariff)
	}
	return kernel.Round3(frais2 + promoTariff)
}

// AppFee selects the application fee: the uncovered course part when there
// is one, otherwise the zero-price floor.
func (f FeeCalculator) AppFee(frais3, frais4 float64) float64 {
	if frais3 > 0 {
		return frais3
	}
	return frais4
}

// Calculate runs the full seven-step sequence over the given inputs.
func (f FeeCalculator) Calculate(in FeeInputs) FeeBreakdown {
	m := kernel.Round3(in.ClientPrice - in.Payout)

	frais1 := f.Frais1(m, in.MinBound, in.MaxBound)
	frais2 := f.Frais2(m, frais1, in.PromoTariff, in.MontantCourse)
	frais3 := f.Frais3(in.MontantCourse, in.TotalAmount, in.Payout)
	frais4 := f.Frais4(in.ClientPrice, in.FloorFee)
	margeNet := f.MargeNet(m, frais1, in.PromoTariff, in.MontantCourse)

	return FeeBreakdown{
		Margin:      m,
		Frais1:      frais1,
		Frais2:      frais2,
		Frais3:      frais3,
		Frais4:      frais4,
		MargeNet:    margeNet,
		DeliveryFee: f.DeliveryFee(frais1, frais2, in.PromoTariff, margeNet),
		AppFee:      f.AppFee(frais3, frais4),
	}
}
