package order

import (
	"errors"
	"fmt"
	"time"

	"amigos/internal/core/domain/model/kernel"
	"amigos/internal/pkg/errs"
	"amigos/internal/pkg/guard"
)

const (
	// MinProviders and MaxProviders bound how many providers an order can
	// collect from. Pharmacy and grocery baskets may span two providers.
	MinProviders = 1
	MaxProviders = 2

	// MinGroupSize and MaxGroupSize bound the cardinality of a formed group.
	MinGroupSize = 2
	MaxGroupSize = 3
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrOrderNotGroupable is returned when an order fails the grouping
	// eligibility rules (already grouped, urgent, assigned, non-pending,
	// grouping disabled, or still inside its processing delay).
	ErrOrderNotGroupable = errors.New("order is not eligible for grouping")

	// ErrItemsAreRequired is returned when an order is created without line items.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
)

// Flags carries the boolean attributes that steer pricing and grouping.
// Urgent orders are priced under the urgent regime and never grouped;
// Express and Priority select the express pricing regime; CanBeGrouped
// is the client's opt-out switch for multi-stop runs.
type Flags struct {
	Urgent       bool
	Express      bool
	Priority     bool
	CanBeGrouped bool
}

// Totals is a read snapshot of an order's monetary aggregates. P1Total and
// P2Total are derived from the line items at construction; the fee fields are
// written by the settlement calculators.
type Totals struct {
	P1Total       float64
	P2Total       float64
	DeliveryFee   float64
	AppFee        float64
	PlatformSolde float64
	FinalAmount   float64
}

// CancellationInfo records how a cancelled order ended. Type is
// CancellationNone while the order is alive.
type CancellationInfo struct {
	Type        CancellationType
	Solde       float64
	Reason      string
	CancelledBy *kernel.UUID
	CancelledAt *time.Time
}

// Schedule carries the deferred-processing fields. An order with a non-nil
// ScheduledFor is invisible to grouping until that instant passes and the
// scheduler promotes it.
type Schedule struct {
	ProcessingDelay time.Duration
	ScheduledFor    *time.Time
	ProtectionEnd   *time.Time
}

// Order is the aggregate root of the order lifecycle. It owns the status
// state machine, the grouping state, the monetary totals and the
// cancellation outcome.
//
// Invariants:
//   - 1..2 providers, at least one line item
//   - status transitions follow the Status state machine
//   - an urgent order is always TypeA4 and never grouped
//   - isGrouped implies 1..2 peers and a group type of A2 or A3
//   - a grouped or assigned order can never join another group
type Order struct {
	id          kernel.UUID
	clientID    kernel.UUID
	providerIDs []kernel.UUID
	items       []Item
	zoneNumber  int
	city        string
	pickup      kernel.GeoPoint
	dropoff     kernel.GeoPoint
	paymentMode ProviderPaymentMode

	status    Status
	orderType Type
	flags     Flags
	courierID *kernel.UUID

	isGrouped  bool
	groupPeers []kernel.UUID
	groupSolde float64

	totals       Totals
	cancellation CancellationInfo
	schedule     Schedule
	createdAt    time.Time

	// guard ensures the order was properly constructed
	guard guard.ConstructorGuard
}

// NewOrder creates a pending order from its commercial inputs.
//
// Non-urgent orders start as TypeA1 and may later be reclassified to A2/A3
// when a group forms. Urgent orders are classified TypeA4 immediately and
// excluded from grouping regardless of the CanBeGrouped flag.
//
// Parameters:
//   - id, clientID: valid UUIDs
//   - providerIDs: 1..2 valid provider references
//   - items: at least one validated line item
//   - zoneNumber: pricing zone the delivery falls into
//   - city: city whose multiplier applies
//   - pickup, dropoff: provider and client positions
//   - paymentMode: how the provider settles ("especes" or "facture")
//   - flags: urgency/express/grouping attributes
//   - createdAt: creation instant (drives the client grace period and the
//     grouping lookback window)
func NewOrder(
	id kernel.UUID,
	clientID kernel.UUID,
	providerIDs []kernel.UUID,
	items []Item,
	zoneNumber int,
	city string,
	pickup kernel.GeoPoint,
	dropoff kernel.GeoPoint,
	paymentMode ProviderPaymentMode,
	flags Flags,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status: StatusPending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setClientID(clientID),
		o.setProviderIDs(providerIDs),
		o.setItems(items),
		o.setZoneNumber(zoneNumber),
		o.setCity(city),
		o.setPickup(pickup),
		o.setDropoff(dropoff),
		o.setPaymentMode(paymentMode),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	o.flags = flags
	if flags.Urgent {
		o.orderType = TypeA4
	} else {
		o.orderType = TypeA1
	}

	return o, nil
}

// RestoreOrderParams carries the full persisted state of an order for
// rehydration. Monetary and lifecycle fields are taken as stored;
// P1Total and P2Total are still recomputed from the items.
type RestoreOrderParams struct {
	ID          kernel.UUID
	ClientID    kernel.UUID
	ProviderIDs []kernel.UUID
	Items       []Item
	ZoneNumber  int
	City        string
	Pickup      kernel.GeoPoint
	Dropoff     kernel.GeoPoint
	PaymentMode ProviderPaymentMode

	Status    Status
	OrderType Type
	Flags     Flags
	CourierID *kernel.UUID

	IsGrouped  bool
	GroupPeers []kernel.UUID
	GroupSolde float64

	DeliveryFee   float64
	AppFee        float64
	PlatformSolde float64
	FinalAmount   float64

	Cancellation CancellationInfo
	Schedule     Schedule
	CreatedAt    time.Time
}

// RestoreOrder reconstructs an order from persistence. Unlike NewOrder it
// accepts any valid status and classification, so repositories can rehydrate
// orders at every point of their lifecycle.
func RestoreOrder(params RestoreOrderParams) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(params.ID),
		o.setClientID(params.ClientID),
		o.setProviderIDs(params.ProviderIDs),
		o.setItems(params.Items),
		o.setZoneNumber(params.ZoneNumber),
		o.setCity(params.City),
		o.setPickup(params.Pickup),
		o.setDropoff(params.Dropoff),
		o.setPaymentMode(params.PaymentMode),
		o.setCreatedAt(params.CreatedAt),
		params.Status.Validate(),
		params.OrderType.Validate(),
	); err != nil {
		return nil, err
	}

	if params.CourierID != nil {
		if err := params.CourierID.Validate(); err != nil {
			return nil, err
		}
		o.courierID = params.CourierID
	}

	o.status = params.Status
	o.orderType = params.OrderType
	o.flags = params.Flags
	o.isGrouped = params.IsGrouped
	o.groupPeers = append([]kernel.UUID(nil), params.GroupPeers...)
	o.groupSolde = params.GroupSolde
	o.totals.DeliveryFee = params.DeliveryFee
	o.totals.AppFee = params.AppFee
	o.totals.PlatformSolde = params.PlatformSolde
	o.totals.FinalAmount = params.FinalAmount
	o.cancellation = params.Cancellation
	o.schedule = params.Schedule

	return o, nil
}

// Validate ensures the Order was created via NewOrder or RestoreOrder.
// Call it when rehydrating orders from persistence.
func (o *Order) Validate() error {
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ClientID returns the ordering client's identifier.
func (o *Order) ClientID() kernel.UUID {
	return o.clientID
}

// ProviderIDs returns the provider references (1..2). The slice is a copy.
func (o *Order) ProviderIDs() []kernel.UUID {
	out := make([]kernel.UUID, len(o.providerIDs))
	copy(out, o.providerIDs)
	return out
}

// Items returns the order lines. The slice is a copy.
func (o *Order) Items() []Item {
	out := make([]Item, len(o.items))
	copy(out, o.items)
	return out
}

// ZoneNumber returns the pricing zone of the delivery.
func (o *Order) ZoneNumber() int {
	return o.zoneNumber
}

// City returns the city whose multiplier applies to this order.
func (o *Order) City() string {
	return o.city
}

// Pickup returns the provider position.
func (o *Order) Pickup() kernel.GeoPoint {
	return o.pickup
}

// Dropoff returns the client delivery position.
func (o *Order) Dropoff() kernel.GeoPoint {
	return o.dropoff
}

// PaymentMode returns how the provider settles with the platform.
func (o *Order) PaymentMode() ProviderPaymentMode {
	return o.paymentMode
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// OrderType returns the current classification (A1..A4).
func (o *Order) OrderType() Type {
	return o.orderType
}

// OrderFlags returns the boolean pricing/grouping attributes.
func (o *Order) OrderFlags() Flags {
	return o.flags
}

// Courier returns the assigned courier's ID, or nil while unassigned.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// IsGrouped reports whether the order belongs to a formed group.
func (o *Order) IsGrouped() bool {
	return o.isGrouped
}

// GroupPeers returns the ids of the other members of the order's group.
// Empty while ungrouped. The slice is a copy.
func (o *Order) GroupPeers() []kernel.UUID {
	out := make([]kernel.UUID, len(o.groupPeers))
	copy(out, o.groupPeers)
	return out
}

// GroupSolde returns the solde of the whole group this order belongs to
// (the sum of each member's simple solde), or 0 while ungrouped.
func (o *Order) GroupSolde() float64 {
	return o.groupSolde
}

// OrderTotals returns the monetary snapshot.
func (o *Order) OrderTotals() Totals {
	return o.totals
}

// Cancellation returns the cancellation outcome. Type is CancellationNone
// while the order is alive.
func (o *Order) Cancellation() CancellationInfo {
	return o.cancellation
}

// ProcessingSchedule returns the deferred-processing fields.
func (o *Order) ProcessingSchedule() Schedule {
	return o.schedule
}

// CreatedAt returns the creation instant.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// SoldeSimple returns the platform's simple balance for this order:
// client price total minus the partner payout total, rounded to 3 decimals.
func (o *Order) SoldeSimple() float64 {
	return kernel.Round3(o.totals.P2Total - o.totals.P1Total)
}

// Defer postpones grouping eligibility by the given delay, measured from
// the order's creation. A protection window can shield the order from
// merchant cancellation during the same period.
func (o *Order) Defer(delay time.Duration, protection time.Duration) error {
	if delay <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("processingDelay",
			fmt.Errorf("%s is not greater than 0", delay))
	}

	scheduledFor := o.createdAt.Add(delay)
	o.schedule.ProcessingDelay = delay
	o.schedule.ScheduledFor = &scheduledFor

	if protection > 0 {
		protectionEnd := o.createdAt.Add(protection)
		o.schedule.ProtectionEnd = &protectionEnd
	}

	return nil
}

// Promote clears the deferred-processing fields once the scheduled instant
// has passed, making the order a grouping candidate again. Promoting an
// order with no schedule is a no-op.
func (o *Order) Promote(now time.Time) error {
	if o.schedule.ScheduledFor == nil {
		return nil
	}
	if now.Before(*o.schedule.ScheduledFor) {
		return errs.NewValueIsInvalidErrorWithCause("scheduledFor",
			fmt.Errorf("scheduled for %s, now is %s", o.schedule.ScheduledFor, now))
	}

	o.schedule.ProcessingDelay = 0
	o.schedule.ScheduledFor = nil
	return nil
}

// CanJoinGroup checks every grouping eligibility rule:
// pending, unassigned, ungrouped, not urgent, grouping allowed, a groupable
// type, and no pending processing delay at the given instant.
//
// Returns ErrOrderNotGroupable (wrapped with the failing rule) or nil.
func (o *Order) CanJoinGroup(now time.Time) error {
	switch {
	case o.status != StatusPending:
		return fmt.Errorf("%w: status is %s", ErrOrderNotGroupable, o.status)
	case o.courierID != nil:
		return fmt.Errorf("%w: already assigned to a courier", ErrOrderNotGroupable)
	case o.isGrouped:
		return fmt.Errorf("%w: already grouped", ErrOrderNotGroupable)
	case o.flags.Urgent:
		return fmt.Errorf("%w: urgent orders are never grouped", ErrOrderNotGroupable)
	case !o.flags.CanBeGrouped:
		return fmt.Errorf("%w: grouping disabled for this order", ErrOrderNotGroupable)
	case !o.orderType.IsGroupable():
		return fmt.Errorf("%w: type %s is not groupable", ErrOrderNotGroupable, o.orderType)
	case o.schedule.ScheduledFor != nil && now.Before(*o.schedule.ScheduledFor):
		return fmt.Errorf("%w: deferred until %s", ErrOrderNotGroupable, o.schedule.ScheduledFor)
	default:
		return nil
	}
}

// FormGroup marks the order as a member of a newly formed group.
//
// The peers slice holds the OTHER members' ids (1 peer for a duo, 2 for a
// trio); groupType must match the cardinality (A2 for duos, A3 for trios).
// The order must pass CanJoinGroup at the given instant.
func (o *Order) FormGroup(peers []kernel.UUID, groupType Type, groupSolde float64, now time.Time) error {
	if err := o.CanJoinGroup(now); err != nil {
		return err
	}

	wantPeers := 0
	switch groupType {
	case TypeA2:
		wantPeers = 1
	case TypeA3:
		wantPeers = 2
	default:
		return errs.NewValueIsInvalidErrorWithCause("groupType",
			fmt.Errorf("%s is not a group member type", groupType))
	}

	if len(peers) != wantPeers {
		return errs.NewValueIsOutOfRangeError("group peers", len(peers), wantPeers, wantPeers)
	}
	for _, peer := range peers {
		if err := peer.Validate(); err != nil {
			return err
		}
		if peer.IsEqual(o.id) {
			return errs.NewValueIsInvalidErrorWithCause("peers",
				fmt.Errorf("order %s cannot be its own peer", o.id))
		}
	}

	o.isGrouped = true
	o.groupPeers = append([]kernel.UUID(nil), peers...)
	o.orderType = groupType
	o.groupSolde = kernel.Round3(groupSolde)
	return nil
}

// Accept assigns the order to a courier and moves it to Accepted.
func (o *Order) Accept(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courierID = &courierID
	return nil
}

// StartPreparing moves the order to Preparing.
func (o *Order) StartPreparing() error {
	newStatus, err := o.status.StartPreparing()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// MarkCollected moves the order to Collected.
func (o *Order) MarkCollected() error {
	newStatus, err := o.status.MarkCollected()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// StartDelivery moves the order to InDelivery.
func (o *Order) StartDelivery() error {
	newStatus, err := o.status.StartDelivery()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Deliver moves the order to its successful terminal state.
func (o *Order) Deliver() error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Cancel terminates the order with the given cancellation outcome.
//
// Cancelling an already-cancelled order with the same type is an idempotent
// no-op; any other repeated cancellation is rejected. The solde is rounded
// to 3 decimals before being recorded.
func (o *Order) Cancel(
	ctype CancellationType,
	solde float64,
	reason string,
	cancelledBy *kernel.UUID,
	at time.Time,
) error {
	if err := ctype.Validate(); err != nil {
		return err
	}

	if o.status == StatusCancelled {
		if o.cancellation.Type == ctype {
			return nil
		}
		return errs.NewValueIsInvalidErrorWithCause("cancellationType",
			fmt.Errorf("as %s, cannot cancel again as %s", o.cancellation.Type, ctype))
	}

	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.cancellation = CancellationInfo{
		Type:        ctype,
		Solde:       kernel.Round3(solde),
		Reason:      reason,
		CancelledBy: cancelledBy,
		CancelledAt: &at,
	}
	return nil
}

// ApplySettlement records the computed fee outputs on the order. Amounts are
// rounded to 3 decimals.
func (o *Order) ApplySettlement(deliveryFee, appFee, platformSolde, finalAmount float64) {
	o.totals.DeliveryFee = kernel.Round3(deliveryFee)
	o.totals.AppFee = kernel.Round3(appFee)
	o.totals.PlatformSolde = kernel.Round3(platformSolde)
	o.totals.FinalAmount = kernel.Round3(finalAmount)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return err
	}
	o.clientID = clientID
	return nil
}

func (o *Order) setProviderIDs(providerIDs []kernel.UUID) error {
	if len(providerIDs) < MinProviders || len(providerIDs) > MaxProviders {
		return errs.NewValueIsOutOfRangeError("providers", len(providerIDs), MinProviders, MaxProviders)
	}
	for _, id := range providerIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	o.providerIDs = append([]kernel.UUID(nil), providerIDs...)
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	var p1, p2 float64
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		p1 += item.CostTotal()
		p2 += item.PriceTotal()
	}

	o.items = append([]Item(nil), items...)
	o.totals.P1Total = kernel.Round3(p1)
	o.totals.P2Total = kernel.Round3(p2)
	return nil
}

func (o *Order) setZoneNumber(zoneNumber int) error {
	if zoneNumber <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("zoneNumber",
			fmt.Errorf("%d is not greater than 0", zoneNumber))
	}
	o.zoneNumber = zoneNumber
	return nil
}

func (o *Order) setCity(city string) error {
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	o.city = city
	return nil
}

func (o *Order) setPickup(pickup kernel.GeoPoint) error {
	if err := pickup.Validate(); err != nil {
		return err
	}
	o.pickup = pickup
	return nil
}

func (o *Order) setDropoff(dropoff kernel.GeoPoint) error {
	if err := dropoff.Validate(); err != nil {
		return err
	}
	o.dropoff = dropoff
	return nil
}

func (o *Order) setPaymentMode(paymentMode ProviderPaymentMode) error {
	if err := paymentMode.Validate(); err != nil {
		return err
	}
	o.paymentMode = paymentMode
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}
