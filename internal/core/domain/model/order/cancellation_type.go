package order

import (
	"fmt"

	"amigos/internal/pkg/errs"
)

// CancellationType identifies which of the three recognized cancellation
// flows terminated an order. The types are mutually exclusive and terminal.
type CancellationType int

const (
	// CancellationNone means the order was not cancelled.
	CancellationNone CancellationType = iota
	// Annuler1 is a client cancellation inside the one-minute grace period.
	// It carries no solde.
	Annuler1
	// Annuler2 is a merchant-initiated cancellation (item unavailable).
	// The courier is compensated with a share of the montant course, plus
	// the payout refund when the provider was paid in cash.
	Annuler2
	// Annuler3 is an admin-forced cancellation for a client no-show. Same
	// courier compensation as Annuler2, and the client account is blocked.
	Annuler3
)

// Validate checks that the value is one of the three cancellation types.
// CancellationNone is not a valid type for a cancelled order.
func (t CancellationType) Validate() error {
	if t < Annuler1 || t > Annuler3 {
		return errs.NewValueIsInvalidErrorWithCause("cancellation type is invalid",
			fmt.Errorf("%d is not a valid cancellation type", t))
	}
	return nil
}

// CancellationTypeFromString parses a settlement ledger name back into a
// CancellationType. The empty string parses to CancellationNone.
func CancellationTypeFromString(s string) (CancellationType, error) {
	switch s {
	case "":
		return CancellationNone, nil
	case "ANNULER_1":
		return Annuler1, nil
	case "ANNULER_2":
		return Annuler2, nil
	case "ANNULER_3":
		return Annuler3, nil
	default:
		return CancellationNone, errs.NewValueIsInvalidErrorWithCause("cancellationType",
			fmt.Errorf("%q is not a valid cancellation type", s))
	}
}

// String returns the settlement ledger name: "ANNULER_1".."ANNULER_3".
func (t CancellationType) String() string {
	switch t {
	case Annuler1:
		return "ANNULER_1"
	case Annuler2:
		return "ANNULER_2"
	case Annuler3:
		return "ANNULER_3"
	default:
		return ""
	}
}
