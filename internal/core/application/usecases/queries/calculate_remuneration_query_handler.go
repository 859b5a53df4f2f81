package queries

import (
	"context"

	"amigos/internal/core/domain/services"
	"amigos/internal/core/ports"
	"amigos/internal/pkg/errs"
)

// CalculateRemunerationQueryHandler prices an order on demand. Unlike the
// list queries it goes through the domain calculator instead of raw SQL:
// the pricing rules live in one place and the query only assembles their
// inputs.
type CalculateRemunerationQueryHandler struct {
	orders       ports.OrderRepository
	tariffs      ports.TariffRepository
	remuneration services.RemunerationCalculator
}

// NewCalculateRemunerationQueryHandler creates a handler for remuneration
// pricing queries.
func NewCalculateRemunerationQueryHandler(
	orders ports.OrderRepository,
	tariffs ports.TariffRepository,
	remuneration services.RemunerationCalculator,
) (CalculateRemunerationQueryHandler, error) {
	if orders == nil {
		return CalculateRemunerationQueryHandler{}, errs.NewValueIsRequiredError("orders")
	}
	if tariffs == nil {
		return CalculateRemunerationQueryHandler{}, errs.NewValueIsRequiredError("tariffs")
	}

	return CalculateRemunerationQueryHandler{
		orders:       orders,
		tariffs:      tariffs,
		remuneration: remuneration,
	}, nil
}

// Handle prices the order under the requested or derived payment mode.
func (h CalculateRemunerationQueryHandler) Handle(
	ctx context.Context,
	query CalculateRemunerationQuery,
) (CalculateRemunerationQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CalculateRemunerationQueryResponse{}, err
	}

	target, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return CalculateRemunerationQueryResponse{}, err
	}

	city, err := h.tariffs.GetCity(ctx, target.City())
	if err != nil {
		return CalculateRemunerationQueryResponse{}, err
	}

	zone, err := h.tariffs.GetZone(ctx, target.ZoneNumber())
	if err != nil {
		return CalculateRemunerationQueryResponse{}, err
	}

	breakdown, err := h.remuneration.Calculate(target, city, zone, query.Mode())
	if err != nil {
		return CalculateRemunerationQueryResponse{}, err
	}

	return CalculateRemunerationQueryResponse{
		OrderID:               target.ID(),
		Mode:                  breakdown.Mode.String(),
		MontantCourse:         breakdown.MontantCourse,
		DelivererRemuneration: breakdown.DelivererRemuneration,
		PartnerPayout:         breakdown.PartnerPayout,
		ClientAmount:          breakdown.ClientAmount,
		PlatformRevenue:       breakdown.PlatformRevenue,
	}, nil
}
