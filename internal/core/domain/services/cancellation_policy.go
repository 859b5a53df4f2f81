package services

import (
	"errors"
	"time"

	"amigos/internal/core/domain/model/kernel"
	"amigos/internal/core/domain/model/order"
)

const (
	// DefaultClientCancellationWindow is how long after creation a client may
	// cancel for free.
	DefaultClientCancellationWindow = time.Minute
	// CancellationCompensationRate is the share of the montant course owed to
	// the courier when a run is cancelled on them.
	CancellationCompensationRate = 0.3
)

// Cancellation policy errors. These are state rejections: the order is left
// untouched and the caller maps them to a structured refusal.
var (
	// ErrCancellationWindowElapsed is returned when the client grace period is over.
	ErrCancellationWindowElapsed = errors.New("client cancellation window has elapsed")
	// ErrOrderNotCancellable is returned when the order is already terminal.
	ErrOrderNotCancellable = errors.New("order can no longer be cancelled")
)

// CancellationPolicy is a domain service deciding whether a cancellation is
// allowed and what compensation it carries.
//
// Business rules:
//   - a client cancels free of charge within the grace window, never after
//   - a merchant or admin cancellation compensates the courier with 30% of
//     the montant course, plus the full payout when the provider settles in
//     cash (the courier already advanced that money)
type CancellationPolicy struct {
	clientWindow time.Duration
}

// NewCancellationPolicy creates a policy with the default client window.
func NewCancellationPolicy() CancellationPolicy {
	return CancellationPolicy{clientWindow: DefaultClientCancellationWindow}
}

// NewCancellationPolicyWithWindow creates a policy with a custom client
// window, used by tests and configuration.
func NewCancellationPolicyWithWindow(clientWindow time.Duration) CancellationPolicy {
	return CancellationPolicy{clientWindow: clientWindow}
}

// ClientWindow returns the client grace window.
func (p CancellationPolicy) ClientWindow() time.Duration {
	return p.clientWindow
}

// ClientSolde validates a client cancellation at the given instant and
// returns its compensation, always 0. Rejects with
// ErrCancellationWindowElapsed once the grace window is over.
func (p CancellationPolicy) ClientSolde(o *order.Order, at time.Time) (float64, error) {
	if err := o.Validate(); err != nil {
		return 0, err
	}
	if o.Status().IsTerminal() {
		return 0, ErrOrderNotCancellable
	}
	if at.Sub(o.CreatedAt()) >= p.clientWindow {
		return 0, ErrCancellationWindowElapsed
	}
	return 0, nil
}

// CompensationSolde returns the courier compensation of a merchant or
// admin cancellation: 30% of the montant course, plus the partner payout
// when the provider settles in cash.
func (p CancellationPolicy) CompensationSolde(
	payout float64,
	montantCourse float64,
	mode order.ProviderPaymentMode,
) float64 {
	solde := CancellationCompensationRate * montantCourse
	if mode == order.PaymentEspeces {
		solde += payout
	}
	return kernel.Round3(solde)
}
