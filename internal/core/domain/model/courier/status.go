package courier

import (
	"fmt"

	"amigos/internal/pkg/errs"
)

// Status represents the availability of a courier.
type Status int

const (
	// StatusUnknown is the zero value and is never valid.
	StatusUnknown Status = iota
	// StatusFree means the courier carries no active orders.
	StatusFree
	// StatusBusy means the courier carries at least one active order.
	StatusBusy
	// StatusSuspended means the courier is blocked from accepting orders.
	StatusSuspended
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "unknown",
		StatusFree:      "free",
		StatusBusy:      "busy",
		StatusSuspended: "suspended",
	}
}

// StatusFromString parses a wire name back into a Status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid courier status", s))
}

// Validate checks that the status is one of the defined values.
func (s Status) Validate() error {
	switch s {
	case StatusFree, StatusBusy, StatusSuspended:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid courier status", int(s)))
	}
}

// String returns the wire representation of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return fmt.Sprintf("Status(%d)", int(s))
}
