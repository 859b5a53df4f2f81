package queries

import (
	"errors"

	"amigos/internal/core/domain/model/kernel"
	"amigos/internal/core/domain/model/tariff"
	"amigos/internal/pkg/errs"
	"amigos/internal/pkg/guard"
)

var ErrCalculateRemunerationQueryIsNotConstructed = errors.New(
	"CalculateRemunerationQuery must be created via NewCalculateRemunerationQuery constructor",
)

// CalculateRemunerationQuery prices one order under a payment mode: the
// montant course, the courier remuneration, the partner payout and the
// client amount. Leaving the mode unset derives it from the order's
// attributes.
type CalculateRemunerationQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	mode    tariff.PaymentMode

	guard guard.ConstructorGuard
}

// NewCalculateRemunerationQuery creates a remuneration query.
// Pass tariff.ModeUnknown to let the pricing derive the mode.
func NewCalculateRemunerationQuery(orderID kernel.UUID, mode tariff.PaymentMode) (CalculateRemunerationQuery, error) {
	query := CalculateRemunerationQuery{
		mode:  mode,
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setOrderID(orderID); err != nil {
		return CalculateRemunerationQuery{}, err
	}
	if mode != tariff.ModeUnknown {
		if err := mode.Validate(); err != nil {
			return CalculateRemunerationQuery{}, err
		}
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q CalculateRemunerationQuery) Validate() error {
	return q.guard.Validate(ErrCalculateRemunerationQueryIsNotConstructed)
}

// OrderID returns the order to price.
func (q CalculateRemunerationQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Mode returns the requested payment mode, ModeUnknown when derived.
func (q CalculateRemunerationQuery) Mode() tariff.PaymentMode {
	return q.mode
}

func (q *CalculateRemunerationQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}

	q.orderID = orderID
	return nil
}

// CalculateRemunerationQueryResponse is the pricing read model.
type CalculateRemunerationQueryResponse struct {
	OrderID               kernel.UUID
	Mode                  string
	MontantCourse         float64
	DelivererRemuneration float64
	PartnerPayout         float64
	ClientAmount          float64
	PlatformRevenue       float64
}
