package order

import (
	"fmt"

	"amigos/internal/pkg/errs"
)

// Type classifies an order by grouping cardinality and urgency.
//
// Categories:
//   - A1: single order, standard delivery
//   - A2: member of a two-order group
//   - A3: member of a three-order group
//   - A4: urgent order, never grouped
//
// TypeUnspecified is the state of a fresh order before classification.
type Type int

const (
	// TypeUnspecified means the order has not been classified yet.
	TypeUnspecified Type = iota
	// TypeA1 is a standard single order.
	TypeA1
	// TypeA2 is a member of a duo group.
	TypeA2
	// TypeA3 is a member of a trio group.
	TypeA3
	// TypeA4 is an urgent order; urgent orders are never grouped.
	TypeA4
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnspecified: "",
		TypeA1:          "A1",
		TypeA2:          "A2",
		TypeA3:          "A3",
		TypeA4:          "A4",
	}
}

// Validate checks that the type is one of A1..A4.
// TypeUnspecified is not a valid classified type.
func (t Type) Validate() error {
	if t < TypeA1 || t > TypeA4 {
		return errs.NewValueIsInvalidErrorWithCause("order type is invalid",
			fmt.Errorf("%d is not a valid order type", t))
	}
	return nil
}

// String returns "A1".."A4", or the empty string for TypeUnspecified.
func (t Type) String() string {
	if s, ok := getTypeStrings()[t]; ok {
		return s
	}
	return ""
}

// TypeFromString parses "A1".."A4" back into a Type.
func TypeFromString(s string) (Type, error) {
	for t, name := range getTypeStrings() {
		if t != TypeUnspecified && name == s {
			return t, nil
		}
	}
	return TypeUnspecified, errs.NewValueIsInvalidErrorWithCause("orderType",
		fmt.Errorf("%q is not a valid order type", s))
}

// IsGroupable reports whether orders of this type may join a group.
// A1, A2 and A3 are groupable; A4 (urgent) never is. An unclassified order
// is groupable as well: classification happens when the group forms.
func (t Type) IsGroupable() bool {
	switch t {
	case TypeUnspecified, TypeA1, TypeA2, TypeA3:
		return true
	default:
		return false
	}
}

// GroupTypeForSize returns the member type assigned when a group of the
// given size forms: two orders become A2, three become A3.
func GroupTypeForSize(size int) (Type, error) {
	switch size {
	case 2:
		return TypeA2, nil
	case 3:
		return TypeA3, nil
	default:
		return TypeUnspecified, errs.NewValueIsOutOfRangeError("group size", size, 2, 3)
	}
}

// ProviderPaymentMode is how the provider settles with the platform for an
// order. It decides whether a merchant cancellation refunds the payout.
type ProviderPaymentMode int

const (
	// PaymentModeUnknown is an invalid zero value.
	PaymentModeUnknown ProviderPaymentMode = iota
	// PaymentEspeces means the courier pays the provider in cash up front;
	// a merchant cancellation therefore refunds the payout to the courier.
	PaymentEspeces
	// PaymentFacture means the provider invoices the platform; no cash
	// changed hands, so no payout refund on cancellation.
	PaymentFacture
)

// Validate checks that the payment mode is one of the defined modes.
func (m ProviderPaymentMode) Validate() error {
	if m != PaymentEspeces && m != PaymentFacture {
		return errs.NewValueIsInvalidErrorWithCause("provider payment mode is invalid",
			fmt.Errorf("%d is not a valid provider payment mode", m))
	}
	return nil
}

// PaymentModeFromString parses "especes" or "facture" back into a
// ProviderPaymentMode.
func PaymentModeFromString(s string) (ProviderPaymentMode, error) {
	switch s {
	case "especes":
		return PaymentEspeces, nil
	case "facture":
		return PaymentFacture, nil
	default:
		return PaymentModeUnknown, errs.NewValueIsInvalidErrorWithCause("paymentMode",
			fmt.Errorf("%q is not a valid provider payment mode", s))
	}
}

// String returns the wire name: "especes" or "facture".
func (m ProviderPaymentMode) String() string {
	switch m {
	case PaymentEspeces:
		return "especes"
	case PaymentFacture:
		return "facture"
	default:
		return "unknown"
	}
}
