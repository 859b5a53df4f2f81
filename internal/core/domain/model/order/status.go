package order

import (
	"fmt"

	"amigos/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions so orders follow
// the marketplace workflow.
//
// State transitions:
//
//	Pending ──> Accepted ──> Preparing ──> Collected ──> InDelivery ──> Delivered
//	   │            │            │             │              │
//	   └────────────┴────────────┴─────────────┴──────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal. Cancelled additionally carries a
// cancellation type on the order itself.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status. Pending unassigned orders are the
	// only grouping candidates and the only orders a courier may accept.
	StatusPending

	// StatusAccepted indicates a courier has accepted the order.
	StatusAccepted

	// StatusPreparing indicates the provider is preparing the order.
	StatusPreparing

	// StatusCollected indicates the courier has collected the order from the
	// provider.
	StatusCollected

	// StatusInDelivery indicates the order is on its way to the client.
	StatusInDelivery

	// StatusDelivered is the successful terminal state.
	StatusDelivered

	// StatusCancelled is the terminal state reached through one of the three
	// cancellation types.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "unknown",
		StatusPending:    "pending",
		StatusAccepted:   "accepted",
		StatusPreparing:  "preparing",
		StatusCollected:  "collected",
		StatusInDelivery: "in_delivery",
		StatusDelivered:  "delivered",
		StatusCancelled:  "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:    "pending",
		StatusAccepted:   "accepted",
		StatusPreparing:  "preparing",
		StatusCollected:  "collected",
		StatusInDelivery: "in_delivery",
		StatusDelivered:  "delivered",
		StatusCancelled:  "cancelled",
	}
}

// Validate checks if the Status value is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status ("pending", "in_delivery", ...).
// Implements fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// StatusFromString parses a wire name back into a Status. Only the valid
// lifecycle states parse; "unknown" and anything else are rejected.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Accept transitions the status to Accepted.
//
// Valid transitions:
//   - Pending -> Accepted
//
// Returns (0, error) if acceptance is not allowed from the current status.
func (s Status) Accept() (Status, error) {
	if s != StatusPending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to accept", s.String()),
		)
	}
	return StatusAccepted, nil
}

// StartPreparing transitions the status to Preparing.
//
// Valid transitions:
//   - Accepted -> Preparing
func (s Status) StartPreparing() (Status, error) {
	if s != StatusAccepted {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to start preparing", s.String()),
		)
	}
	return StatusPreparing, nil
}

// MarkCollected transitions the status to Collected.
//
// Valid transitions:
//   - Accepted -> Collected (provider had the order ready)
//   - Preparing -> Collected
func (s Status) MarkCollected() (Status, error) {
	if s != StatusAccepted && s != StatusPreparing {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to collect", s.String()),
		)
	}
	return StatusCollected, nil
}

// StartDelivery transitions the status to InDelivery.
//
// Valid transitions:
//   - Collected -> InDelivery
func (s Status) StartDelivery() (Status, error) {
	if s != StatusCollected {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to start delivery", s.String()),
		)
	}
	return StatusInDelivery, nil
}

// Deliver transitions the status to Delivered, the successful terminal state.
//
// Valid transitions:
//   - InDelivery -> Delivered
func (s Status) Deliver() (Status, error) {
	if s != StatusInDelivery {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to deliver", s.String()),
		)
	}
	return StatusDelivered, nil
}

// Cancel transitions the status to Cancelled. Any valid non-terminal status
// may be cancelled; the cancellation type on the order decides liability.
func (s Status) Cancel() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s.IsTerminal() {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is terminal and cannot be cancelled", s.String()),
		)
	}
	return StatusCancelled, nil
}
