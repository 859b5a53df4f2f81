package queries

import (
	"context"
	"errors"
	"log/slog"

	"amigos/internal/core/domain/model/kernel"
	"amigos/internal/core/domain/model/tariff"
	"amigos/internal/core/domain/services"
	"amigos/internal/core/ports"
	"amigos/internal/pkg/errs"
)

// CalculateFeesQueryHandler runs the advanced fee reconciliation over one
// order. Margin, additional fee and bonus configuration is resolved from
// the tariff store; when any of it is missing the computation degrades to
// the zero-deduction baseline instead of failing, and says so in the
// response.
type CalculateFeesQueryHandler struct {
	orders       ports.OrderRepository
	tariffs      ports.TariffRepository
	remuneration services.RemunerationCalculator
	fees         services.FeeCalculator
	balance      services.BalanceCalculator
	floorFee     float64
	logger       *slog.Logger
}

// NewCalculateFeesQueryHandler creates a handler for fee reconciliation
// queries. floorFee is the flat fee charged on zero-price orders.
func NewCalculateFeesQueryHandler(
	orders ports.OrderRepository,
	tariffs ports.TariffRepository,
	floorFee float64,
	logger *slog.Logger,
) (CalculateFeesQueryHandler, error) {
	if orders == nil {
		return CalculateFeesQueryHandler{}, errs.NewValueIsRequiredError("orders")
	}
	if tariffs == nil {
		return CalculateFeesQueryHandler{}, errs.NewValueIsRequiredError("tariffs")
	}
	if floorFee < 0 {
		return CalculateFeesQueryHandler{}, errs.NewValueIsInvalidError("floorFee")
	}
	if logger == nil {
		return CalculateFeesQueryHandler{}, errs.NewValueIsRequiredError("logger")
	}

	return CalculateFeesQueryHandler{
		orders:       orders,
		tariffs:      tariffs,
		remuneration: services.NewRemunerationCalculator(),
		fees:         services.NewFeeCalculator(),
		balance:      services.NewBalanceCalculator(),
		floorFee:     floorFee,
		logger:       logger,
	}, nil
}

// Handle reconciles the order's fees and platform balance.
func (h CalculateFeesQueryHandler) Handle(
	ctx context.Context,
	query CalculateFeesQuery,
) (CalculateFeesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CalculateFeesQueryResponse{}, err
	}

	target, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return CalculateFeesQueryResponse{}, err
	}

	city, err := h.tariffs.GetCity(ctx, target.City())
	if err != nil {
		return CalculateFeesQueryResponse{}, err
	}

	zone, err := h.tariffs.GetZone(ctx, target.ZoneNumber())
	if err != nil {
		return CalculateFeesQueryResponse{}, err
	}

	breakdown, err := h.remuneration.Calculate(target, city, zone, tariff.ModeUnknown)
	if err != nil {
		return CalculateFeesQueryResponse{}, err
	}

	category, err := tariff.CategoryFor(target.OrderType())
	if err != nil {
		return CalculateFeesQueryResponse{}, err
	}

	marginCfg, feeLines, bonus, baseline := h.resolveConfig(ctx, target.ID(), category)

	in := services.FeeInputs{
		ClientPrice:   breakdown.ClientAmount,
		Payout:        breakdown.PartnerPayout,
		TotalAmount:   breakdown.ClientAmount,
		MontantCourse: breakdown.MontantCourse,
		PromoTariff:   zone.PromoTariff(),
		FloorFee:      h.floorFee,
	}
	if marginCfg != nil {
		in.MinBound = marginCfg.Minimum()
		in.MaxBound = marginCfg.Maximum()
	}

	fee := h.fees.Calculate(in)

	balanceIn := services.BalanceInputs{
		ClientPrice: breakdown.ClientAmount,
		Payout:      breakdown.PartnerPayout,
		DeliveryFee: fee.DeliveryFee,
		AppFee:      fee.AppFee,
	}
	if !baseline {
		balanceIn.Margin = marginCfg.Margin()
		balanceIn.AdditionalFees = feeLines.TotalFor(category)
		balanceIn.Bonus = bonus.Value()
	}

	return CalculateFeesQueryResponse{
		OrderID:       target.ID(),
		Margin:        fee.Margin,
		Frais1:        fee.Frais1,
		Frais2:        fee.Frais2,
		Frais3:        fee.Frais3,
		Frais4:        fee.Frais4,
		MargeNet:      fee.MargeNet,
		DeliveryFee:   fee.DeliveryFee,
		AppFee:        fee.AppFee,
		PlatformSolde: h.balance.PlatformSolde(balanceIn),
		FinalAmount:   kernel.Round3(breakdown.ClientAmount + fee.DeliveryFee + fee.AppFee),
		Baseline:      baseline,
	}, nil
}

// resolveConfig loads the margin, fee-line and bonus configuration for a
// category. A missing entry switches the whole computation to the baseline;
// any other lookup failure does too, after logging it.
func (h CalculateFeesQueryHandler) resolveConfig(
	ctx context.Context, orderID kernel.UUID, category tariff.MarginCategory,
) (*tariff.MarginConfig, *tariff.AdditionalFees, tariff.Bonus, bool) {
	marginCfg, err := h.tariffs.GetMarginConfig(ctx, category)
	if err != nil {
		h.logConfigMiss(ctx, orderID, "margin", err)
		return nil, nil, tariff.Bonus{}, true
	}

	feeLines, err := h.tariffs.GetAdditionalFees(ctx)
	if err != nil {
		h.logConfigMiss(ctx, orderID, "additional fees", err)
		return nil, nil, tariff.Bonus{}, true
	}

	bonus, err := h.tariffs.GetBonus(ctx)
	if err != nil {
		h.logConfigMiss(ctx, orderID, "bonus", err)
		return nil, nil, tariff.Bonus{}, true
	}

	return marginCfg, feeLines, bonus, false
}

func (h CalculateFeesQueryHandler) logConfigMiss(ctx context.Context, orderID kernel.UUID, concern string, err error) {
	level := slog.LevelError
	if errors.Is(err, errs.ErrObjectNotFound) {
		level = slog.LevelWarn
	}
	h.logger.Log(ctx, level, "fee configuration unavailable, using baseline",
		"order_id", orderID.String(),
		"concern", concern,
		"error", err,
	)
}
