package services

import (
	"errors"
	"fmt"

	"amigos/internal/core/domain/model/courier"
	"amigos/internal/core/domain/model/order"
)

// Acceptance errors.
var (
	// ErrOrderNotPending is returned when accepting an order outside the pending status.
	ErrOrderNotPending = errors.New("order is not pending")
	// ErrOrderBoundToOtherCourier is returned when the order is already bound to
	// a different courier.
	ErrOrderBoundToOtherCourier = errors.New("order is bound to another courier")
	// ErrGroupGeometryViolated is returned when a group's members no longer
	// satisfy the pairwise distance rules.
	ErrGroupGeometryViolated = errors.New("group members violate the distance rules")
)

// AcceptancePolicy is a domain service validating whether a courier may
// take an order or a composed group.
//
// It shares its CompatibilityRules with the grouping planner, so the
// distance thresholds re-checked on the courier-composed path are the same
// ones the automated path groups under.
type AcceptancePolicy struct {
	rules CompatibilityRules
}

// NewAcceptancePolicy creates a policy using the given compatibility rules.
func NewAcceptancePolicy(rules CompatibilityRules) AcceptancePolicy {
	return AcceptancePolicy{rules: rules}
}

// Rules returns the policy's compatibility rules.
func (a AcceptancePolicy) Rules() CompatibilityRules {
	return a.rules
}

// CanAccept checks whether the courier may take the order: the courier has
// spare capacity and is not suspended, the order is pending, and it is not
// bound to another courier. Returns nil when acceptance is allowed.
func (a AcceptancePolicy) CanAccept(c *courier.Courier, o *order.Order) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := o.Validate(); err != nil {
		return err
	}

	if err := c.CanAcceptOrders(1); err != nil {
		return err
	}
	if o.Status() != order.StatusPending {
		return fmt.Errorf("%w: status is %s", ErrOrderNotPending, o.Status())
	}
	if bound := o.Courier(); bound != nil && !bound.IsEqual(c.ID()) {
		return ErrOrderBoundToOtherCourier
	}
	return nil
}

// ValidateGroupGeometry re-applies the pairwise distance rules over a
// composed group's members. Duos need their one pair checked, trios all
// three; the thresholds are the planner's own.
func (a AcceptancePolicy) ValidateGroupGeometry(members []*order.Order) error {
	size := len(members)
	if size < order.MinGroupSize || size > order.MaxGroupSize {
		return fmt.Errorf("%w: %d members", ErrGroupGeometryViolated, size)
	}

	for i := 0; i < size; i++ {
		for j := i + 1; j < size; j++ {
			if !a.rules.Compatible(members[i], members[j]) {
				return fmt.Errorf("%w: orders %s and %s",
					ErrGroupGeometryViolated, members[i].ID(), members[j].ID())
			}
		}
	}
	return nil
}
