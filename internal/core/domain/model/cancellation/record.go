package cancellation

import (
	"errors"
	"time"

	"amigos/internal/core/domain/model/kernel"
	"amigos/internal/core/domain/model/order"
	"amigos/internal/pkg/errs"
	"amigos/internal/pkg/guard"
)

// ErrRecordIsNotConstructed is returned when using an improperly initialized Record.
var ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord constructor")

// Record is the immutable accounting trace of one cancellation. One row is
// written per cancelled order, after the cancellation itself committed.
// Daily sums over these records feed the courier payout process.
type Record struct {
	id          kernel.UUID
	orderID     kernel.UUID
	courierID   *kernel.UUID
	ctype       order.CancellationType
	solde       float64
	paymentMode order.ProviderPaymentMode
	reason      string
	occurredAt  time.Time

	guard guard.ConstructorGuard
}

// NewRecord creates a cancellation record. The solde is rounded to 3
// decimals. courierID is nil when the order was cancelled before any
// assignment.
func NewRecord(
	id kernel.UUID,
	orderID kernel.UUID,
	courierID *kernel.UUID,
	ctype order.CancellationType,
	solde float64,
	paymentMode order.ProviderPaymentMode,
	reason string,
	occurredAt time.Time,
) (*Record, error) {
	r := &Record{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setOrderID(orderID),
		r.setCourierID(courierID),
		ctype.Validate(),
		r.setSolde(solde),
		paymentMode.Validate(),
		r.setOccurredAt(occurredAt),
	); err != nil {
		return nil, err
	}

	r.ctype = ctype
	r.paymentMode = paymentMode
	r.reason = reason
	return r, nil
}

// Validate ensures the Record was created via NewRecord.
func (r *Record) Validate() error {
	return r.guard.Validate(ErrRecordIsNotConstructed)
}

// IsEqual compares two records by their unique identifiers.
func (r *Record) IsEqual(other *Record) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the record's unique identifier.
func (r *Record) ID() kernel.UUID {
	return r.id
}

// OrderID returns the cancelled order's identifier.
func (r *Record) OrderID() kernel.UUID {
	return r.orderID
}

// CourierID returns the courier assigned at cancellation time, or nil.
func (r *Record) CourierID() *kernel.UUID {
	return r.courierID
}

// Type returns how the cancellation was initiated.
func (r *Record) Type() order.CancellationType {
	return r.ctype
}

// Solde returns the compensation amount owed for this cancellation.
func (r *Record) Solde() float64 {
	return r.solde
}

// PaymentMode returns the provider payment mode the solde was computed under.
func (r *Record) PaymentMode() order.ProviderPaymentMode {
	return r.paymentMode
}

// Reason returns the free-text cancellation reason.
func (r *Record) Reason() string {
	return r.reason
}

// OccurredAt returns when the cancellation happened.
func (r *Record) OccurredAt() time.Time {
	return r.occurredAt
}

func (r *Record) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Record) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	r.orderID = orderID
	return nil
}

func (r *Record) setCourierID(courierID *kernel.UUID) error {
	if courierID == nil {
		return nil
	}
	if err := courierID.Validate(); err != nil {
		return err
	}
	r.courierID = courierID
	return nil
}

func (r *Record) setSolde(solde float64) error {
	if solde < 0 {
		return errs.NewValueIsInvalidError("solde")
	}
	r.solde = kernel.Round3(solde)
	return nil
}

func (r *Record) setOccurredAt(occurredAt time.Time) error {
	if occurredAt.IsZero() {
		return errs.NewValueIsRequiredError("occurredAt")
	}
	r.occurredAt = occurredAt
	return nil
}
