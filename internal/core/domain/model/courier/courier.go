package courier

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"amigos/internal/core/domain/model/kernel"
	"amigos/internal/pkg/errs"
	"amigos/internal/pkg/guard"
)

// MaxActiveOrders caps how many orders a courier may carry at once.
// Order acceptance and group assignment both check against this limit.
const MaxActiveOrders = 3

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
	// ErrCourierIsSuspended is returned when a suspended courier tries to accept an order.
	ErrCourierIsSuspended = errors.New("courier is suspended")
	// ErrNoActiveOrders is returned when releasing an order from a courier that carries none.
	ErrNoActiveOrders = errors.New("courier has no active orders")
)

// Courier represents a delivery courier in the system.
// It is an aggregate root that manages courier identity, current load,
// and the daily balances the platform owes for completed and cancelled runs.
//
// Key responsibilities:
//   - Managing courier identity (ID, name)
//   - Enforcing the active-order capacity limit before acceptance
//   - Tracking availability (free, busy, suspended)
//   - Accumulating per-day delivery and cancellation balances
//
// Business rules:
//   - Courier must have a valid UUID and a non-empty name
//   - A courier may carry at most MaxActiveOrders orders at once
//   - A suspended courier can never accept an order
//   - Balances accumulate per UTC calendar day and round to 3 decimals
type Courier struct {
	// id uniquely identifies the courier
	id kernel.UUID
	// name is the human-readable name of the courier
	name string
	// status is the courier's availability
	status Status
	// activeOrders counts the orders currently assigned to the courier
	activeOrders int
	// balances holds the per-day amounts owed, keyed by UTC day
	balances map[time.Time]DailyBalance
	// guard ensures the courier was properly constructed
	guard guard.ConstructorGuard
}

// NewCourier creates a new Courier with the specified parameters.
// This is the only way to create a valid fresh Courier instance.
//
// The courier starts free, with no active orders and no accumulated
// balances.
//
// Parameters:
//   - id: Unique identifier for the courier (must be a valid UUID)
//   - name: Human-readable name (must be non-empty)
//
// Returns:
//   - *Courier: A fully initialized courier ready for operations
//   - error: Validation error if any parameter is invalid
func NewCourier(id kernel.UUID, name string) (*Courier, error) {
	courier := &Courier{
		status:   StatusFree,
		balances: make(map[time.Time]DailyBalance),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// RestoreCourier reconstructs a Courier aggregate from persistent storage.
// Unlike NewCourier, it accepts any valid status and load, so repositories
// can rehydrate couriers mid-shift with their accumulated balances.
//
// Parameters:
//   - id: Unique identifier for the courier
//   - name: Human-readable courier name
//   - status: Current availability
//   - activeOrders: Orders currently assigned (0..MaxActiveOrders)
//   - balances: Per-day balances accumulated so far
//
// Returns:
//   - *Courier: Restored courier aggregate
//   - error: Validation error if any parameter is invalid
func RestoreCourier(
	id kernel.UUID,
	name string,
	status Status,
	activeOrders int,
	balances []DailyBalance,
) (*Courier, error) {
	courier := &Courier{
		balances: make(map[time.Time]DailyBalance, len(balances)),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
		status.Validate(),
		courier.setActiveOrders(activeOrders),
	); err != nil {
		return nil, err
	}

	courier.status = status
	for _, balance := range balances {
		courier.balances[balanceDay(balance.Day)] = balance
	}

	return courier, nil
}

// Validate ensures the Courier was created via a constructor.
func (c *Courier) Validate() error {
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares two couriers by their unique identifiers.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's name.
func (c *Courier) Name() string {
	return c.name
}

// Status returns the courier's availability.
func (c *Courier) Status() Status {
	return c.status
}

// ActiveOrders returns how many orders the courier currently carries.
func (c *Courier) ActiveOrders() int {
	return c.activeOrders
}

// CanAcceptOrders checks whether the courier may take at least count more
// orders. A whole group counts as its member count. Returns nil when
// acceptance is allowed.
func (c *Courier) CanAcceptOrders(count int) error {
	if c.status == StatusSuspended {
		return ErrCourierIsSuspended
	}
	if count <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("count",
			fmt.Errorf("%d is not greater than 0", count))
	}
	if c.activeOrders+count > MaxActiveOrders {
		return errs.NewValueIsOutOfRangeError("activeOrders",
			c.activeOrders+count, 0, MaxActiveOrders)
	}
	return nil
}

// AcceptOrders assigns count more orders to the courier, after checking
// capacity and suspension. The courier becomes busy.
func (c *Courier) AcceptOrders(count int) error {
	if err := c.CanAcceptOrders(count); err != nil {
		return err
	}

	c.activeOrders += count
	c.status = StatusBusy
	return nil
}

// ReleaseOrder removes one order from the courier's load, when a run
// completes or is cancelled. The courier becomes free at zero load.
func (c *Courier) ReleaseOrder() error {
	if c.activeOrders == 0 {
		return ErrNoActiveOrders
	}

	c.activeOrders--
	if c.activeOrders == 0 && c.status == StatusBusy {
		c.status = StatusFree
	}
	return nil
}

// Suspend blocks the courier from accepting further orders. Orders already
// carried are unaffected.
func (c *Courier) Suspend() {
	c.status = StatusSuspended
}

// Reinstate lifts a suspension. The courier returns to free or busy
// depending on its current load.
func (c *Courier) Reinstate() {
	if c.activeOrders > 0 {
		c.status = StatusBusy
	} else {
		c.status = StatusFree
	}
}

// AccrueDeliverySolde adds a completed run's guarantee to the courier's
// balance for the day of the given instant.
func (c *Courier) AccrueDeliverySolde(at time.Time, amount float64) error {
	if err := c.validateAccrual(at, amount); err != nil {
		return err
	}

	day := balanceDay(at)
	balance := c.balances[day]
	balance.Day = day
	balance.SoldeAmigos = kernel.Round3(balance.SoldeAmigos + amount)
	c.balances[day] = balance
	return nil
}

// AccrueCancellationSolde adds a cancellation compensation to the courier's
// balance for the day of the given instant.
func (c *Courier) AccrueCancellationSolde(at time.Time, amount float64) error {
	if err := c.validateAccrual(at, amount); err != nil {
		return err
	}

	day := balanceDay(at)
	balance := c.balances[day]
	balance.Day = day
	balance.SoldeAnnulation = kernel.Round3(balance.SoldeAnnulation + amount)
	c.balances[day] = balance
	return nil
}

// MarkDayPaid flags a day's balance as settled by the payout process.
// Returns an error when the courier has no balance for that day.
func (c *Courier) MarkDayPaid(at time.Time) error {
	day := balanceDay(at)
	balance, ok := c.balances[day]
	if !ok {
		return errs.NewObjectNotFoundError("dailyBalance", day.Format(time.DateOnly))
	}

	balance.Paid = true
	c.balances[day] = balance
	return nil
}

// DailyBalanceFor returns the balance accumulated on the day of the given
// instant, and whether any exists.
func (c *Courier) DailyBalanceFor(at time.Time) (DailyBalance, bool) {
	balance, ok := c.balances[balanceDay(at)]
	return balance, ok
}

// DailyBalances returns all accumulated balances ordered by day.
func (c *Courier) DailyBalances() []DailyBalance {
	out := make([]DailyBalance, 0, len(c.balances))
	for _, balance := range c.balances {
		out = append(out, balance)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Day.Before(out[j].Day)
	})
	return out
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setActiveOrders(activeOrders int) error {
	if activeOrders < 0 || activeOrders > MaxActiveOrders {
		return errs.NewValueIsOutOfRangeError("activeOrders", activeOrders, 0, MaxActiveOrders)
	}
	c.activeOrders = activeOrders
	return nil
}

func (c *Courier) validateAccrual(at time.Time, amount float64) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("at")
	}
	if amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%f is negative", amount))
	}
	return nil
}
