package commands

import (
	"context"
	"log/slog"
	"time"

	"amigos/internal/core/domain/model/kernel"
	"amigos/internal/core/domain/model/order"
	"amigos/internal/core/domain/services"
	"amigos/internal/core/ports"
	"amigos/internal/pkg/errs"
)

// CancelOrderByMerchantCommandHandler processes provider cancellations.
// The courier already working the order is compensated: 30% of the montant
// course, plus the partner payout when the provider settles in cash, booked
// on the courier's daily cancellation balance.
type CancelOrderByMerchantCommandHandler struct {
	uowFactory CancelUoWFactory
	forced     forcedCancellation
	recorder   cancellationRecordWriter
	logger     *slog.Logger
	clock      func() time.Time
}

// NewCancelOrderByMerchantCommandHandler creates a handler for merchant
// cancellations.
func NewCancelOrderByMerchantCommandHandler(
	uowFactory CancelUoWFactory,
	tariffs ports.TariffRepository,
	policy services.CancellationPolicy,
	remuneration services.RemunerationCalculator,
	recordUoWFactory RecordUoWFactory,
	logger *slog.Logger,
) (CancelOrderByMerchantCommandHandler, error) {
	if uowFactory == nil {
		return CancelOrderByMerchantCommandHandler{}, errs.NewValueIsRequiredError("uowFactory")
	}
	if tariffs == nil {
		return CancelOrderByMerchantCommandHandler{}, errs.NewValueIsRequiredError("tariffs")
	}
	if recordUoWFactory == nil {
		return CancelOrderByMerchantCommandHandler{}, errs.NewValueIsRequiredError("recordUoWFactory")
	}
	if logger == nil {
		return CancelOrderByMerchantCommandHandler{}, errs.NewValueIsRequiredError("logger")
	}

	return CancelOrderByMerchantCommandHandler{
		uowFactory: uowFactory,
		forced: forcedCancellation{
			tariffs:      tariffs,
			policy:       policy,
			remuneration: remuneration,
		},
		recorder: cancellationRecordWriter{uowFactory: recordUoWFactory, logger: logger},
		logger:   logger,
		clock:    time.Now,
	}, nil
}

// WithClock overrides the handler's time source. Used by tests.
func (h CancelOrderByMerchantCommandHandler) WithClock(clock func() time.Time) CancelOrderByMerchantCommandHandler {
	h.clock = clock
	return h
}

// Handle processes a merchant cancellation. The initiating merchant must be
// one of the order's providers. Repeating the same cancellation is
// idempotent; any other attempt on a closed order is rejected.
func (h CancelOrderByMerchantCommandHandler) Handle(ctx context.Context, command CancelOrderByMerchantCommand) (CancellationResult, error) {
	if err := command.Validate(); err != nil {
		return CancellationResult{}, err
	}

	now := h.clock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CancellationResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	target, err := uow.OrderRepository().Get(ctx, command.OrderID())
	if err != nil {
		return CancellationResult{}, err
	}

	if !orderHasProvider(target, command.MerchantID()) {
		return CancellationResult{}, errs.NewValueIsInvalidError("merchantID")
	}

	if target.Status().IsTerminal() {
		if info := target.Cancellation(); info.Type == order.Annuler2 {
			return CancellationResult{
				Success: true,
				Message: "commande déjà annulée",
				Type:    order.Annuler2,
				Solde:   info.Solde,
			}, nil
		}
		return rejectedCancellation(order.Annuler2, "la commande est déjà clôturée"), nil
	}

	outcome, err := h.forced.apply(ctx, uow, target, order.Annuler2, command.Reason(), command.MerchantID(), now)
	if err != nil {
		return CancellationResult{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return CancellationResult{}, err
	}

	h.recorder.write(ctx, target, outcome.CourierID)

	h.logger.Info("order cancelled by merchant",
		"order_id", target.ID().String(),
		"merchant_id", command.MerchantID().String(),
		"solde", outcome.Solde,
	)
	return CancellationResult{
		Success: true,
		Message: "commande annulée",
		Type:    order.Annuler2,
		Solde:   outcome.Solde,
	}, nil
}

func orderHasProvider(target *order.Order, merchantID kernel.UUID) bool {
	for _, providerID := range target.ProviderIDs() {
		if providerID.IsEqual(merchantID) {
			return true
		}
	}
	return false
}
