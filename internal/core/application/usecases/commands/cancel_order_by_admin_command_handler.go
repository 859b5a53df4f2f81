package commands

import (
	"context"
	"log/slog"
	"time"

	"amigos/internal/core/domain/model/order"
	"amigos/internal/core/domain/services"
	"amigos/internal/core/ports"
	"amigos/internal/pkg/errs"
)

// CancelOrderByAdminCommandHandler processes admin-forced cancellations for
// client no-shows. The courier compensation matches the merchant path, and
// the client account is blocked in the same transaction as the order: a
// no-show block must never land without its cancellation, nor the reverse.
type CancelOrderByAdminCommandHandler struct {
	uowFactory CancelUoWFactory
	forced     forcedCancellation
	recorder   cancellationRecordWriter
	logger     *slog.Logger
	clock      func() time.Time
}

// NewCancelOrderByAdminCommandHandler creates a handler for admin
// cancellations.
func NewCancelOrderByAdminCommandHandler(
	uowFactory CancelUoWFactory,
	tariffs ports.TariffRepository,
	policy services.CancellationPolicy,
	remuneration services.RemunerationCalculator,
	recordUoWFactory RecordUoWFactory,
	logger *slog.Logger,
) (CancelOrderByAdminCommandHandler, error) {
	if uowFactory == nil {
		return CancelOrderByAdminCommandHandler{}, errs.NewValueIsRequiredError("uowFactory")
	}
	if tariffs == nil {
		return CancelOrderByAdminCommandHandler{}, errs.NewValueIsRequiredError("tariffs")
	}
	if recordUoWFactory == nil {
		return CancelOrderByAdminCommandHandler{}, errs.NewValueIsRequiredError("recordUoWFactory")
	}
	if logger == nil {
		return CancelOrderByAdminCommandHandler{}, errs.NewValueIsRequiredError("logger")
	}

	return CancelOrderByAdminCommandHandler{
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
func (h CancelOrderByAdminCommandHandler) WithClock(clock func() time.Time) CancelOrderByAdminCommandHandler {
	h.clock = clock
	return h
}

// Handle processes an admin cancellation: compensate the courier, close the
// order and block the client, all or nothing.
func (h CancelOrderByAdminCommandHandler) Handle(ctx context.Context, command CancelOrderByAdminCommand) (CancellationResult, error) {
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

	if target.Status().IsTerminal() {
		if info := target.Cancellation(); info.Type == order.Annuler3 {
			return CancellationResult{
				Success: true,
				Message: "commande déjà annulée",
				Type:    order.Annuler3,
				Solde:   info.Solde,
			}, nil
		}
		return rejectedCancellation(order.Annuler3, "la commande est déjà clôturée"), nil
	}

	outcome, err := h.forced.apply(ctx, uow, target, order.Annuler3, command.Reason(), command.AdminID(), now)
	if err != nil {
		return CancellationResult{}, err
	}

	clientRepo := uow.ClientRepository()
	customer, err := clientRepo.Get(ctx, target.ClientID())
	if err != nil {
		return CancellationResult{}, err
	}
	if err := customer.Block(command.Reason(), now); err != nil {
		return CancellationResult{}, err
	}
	if err := clientRepo.Update(ctx, customer); err != nil {
		return CancellationResult{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return CancellationResult{}, err
	}

	h.recorder.write(ctx, target, outcome.CourierID)

	h.logger.Info("order cancelled by admin",
		"order_id", target.ID().String(),
		"admin_id", command.AdminID().String(),
		"client_id", target.ClientID().String(),
		"solde", outcome.Solde,
	)
	return CancellationResult{
		Success: true,
		Message: "commande annulée et client bloqué",
		Type:    order.Annuler3,
		Solde:   outcome.Solde,
	}, nil
}
