package tariff

import (
	"fmt"

	"amigos/internal/pkg/errs"
)

// PaymentMode is the pricing regime an order settles under. Each mode
// carries a fixed multiplier triple applied to the courier remuneration,
// the partner payout and the client price.
type PaymentMode int

const (
	// ModeUnknown is the zero value and is never valid.
	ModeUnknown PaymentMode = iota
	// Mode1 is the standard regime.
	Mode1
	// Mode2 is the express/priority regime.
	Mode2
	// Mode3 is the grouped regime.
	Mode3
	// Mode4 is the urgent regime.
	Mode4
)

// Multipliers is the (delivery, partnerPayout, clientPrice) triple of a
// pricing regime.
type Multipliers struct {
	Delivery      float64
	PartnerPayout float64
	ClientPrice   float64
}

// The per-mode multiplier values are business constants carried over from
// the commercial agreement. They are not derived from anything.
func getModeMultipliers() map[PaymentMode]Multipliers {
	return map[PaymentMode]Multipliers{
		Mode1: {Delivery: 1.0, PartnerPayout: 1.0, ClientPrice: 1.0},
		Mode2: {Delivery: 1.3, PartnerPayout: 1.1, ClientPrice: 1.15},
		Mode3: {Delivery: 0.85, PartnerPayout: 0.95, ClientPrice: 0.9},
		Mode4: {Delivery: 1.7, PartnerPayout: 1.2, ClientPrice: 1.25},
	}
}

func getModeStrings() map[PaymentMode]string {
	return map[PaymentMode]string{
		ModeUnknown: "unknown",
		Mode1:       "Mode_1",
		Mode2:       "Mode_2",
		Mode3:       "Mode_3",
		Mode4:       "Mode_4",
	}
}

// Validate checks that the mode is one of the defined values.
func (m PaymentMode) Validate() error {
	switch m {
	case Mode1, Mode2, Mode3, Mode4:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("paymentMode",
			fmt.Errorf("%d is not a valid payment mode", int(m)))
	}
}

// String returns the wire representation of the mode.
func (m PaymentMode) String() string {
	if str, ok := getModeStrings()[m]; ok {
		return str
	}
	return fmt.Sprintf("PaymentMode(%d)", int(m))
}

// Multipliers returns the mode's multiplier triple. The zero triple is
// returned for an invalid mode; callers validate the mode first.
func (m PaymentMode) Multipliers() Multipliers {
	return getModeMultipliers()[m]
}

// ModeFromString parses a wire representation back into a PaymentMode.
// The empty string maps to ModeUnknown, which callers treat as "derive
// the mode from the order".
func ModeFromString(s string) (PaymentMode, error) {
	if s == "" {
		return ModeUnknown, nil
	}
	for mode, str := range getModeStrings() {
		if mode == ModeUnknown {
			continue
		}
		if str == s {
			return mode, nil
		}
	}
	return ModeUnknown, errs.NewValueIsInvalidErrorWithCause("paymentMode",
		fmt.Errorf("%q is not a valid payment mode", s))
}
