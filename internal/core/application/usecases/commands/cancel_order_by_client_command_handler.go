package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"amigos/internal/core/domain/model/order"
	"amigos/internal/core/domain/services"
	"amigos/internal/pkg/errs"
)

// CancelOrderByClientCommandHandler processes client cancellations.
// The grace window is enforced by the cancellation policy; an attempt
// outside the window comes back as a rejected result, not an error. A
// courier already bound to the order is released without compensation.
type CancelOrderByClientCommandHandler struct {
	uowFactory CancelUoWFactory
	policy     services.CancellationPolicy
	recorder   cancellationRecordWriter
	logger     *slog.Logger
	clock      func() time.Time
}

// NewCancelOrderByClientCommandHandler creates a handler for client
// cancellations.
func NewCancelOrderByClientCommandHandler(
	uowFactory CancelUoWFactory,
	policy services.CancellationPolicy,
	recordUoWFactory RecordUoWFactory,
	logger *slog.Logger,
) (CancelOrderByClientCommandHandler, error) {
	if uowFactory == nil {
		return CancelOrderByClientCommandHandler{}, errs.NewValueIsRequiredError("uowFactory")
	}
	if recordUoWFactory == nil {
		return CancelOrderByClientCommandHandler{}, errs.NewValueIsRequiredError("recordUoWFactory")
	}
	if logger == nil {
		return CancelOrderByClientCommandHandler{}, errs.NewValueIsRequiredError("logger")
	}

	return CancelOrderByClientCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		recorder:   cancellationRecordWriter{uowFactory: recordUoWFactory, logger: logger},
		logger:     logger,
		clock:      time.Now,
	}, nil
}

// WithClock overrides the handler's time source. Used by tests.
func (h CancelOrderByClientCommandHandler) WithClock(clock func() time.Time) CancelOrderByClientCommandHandler {
	h.clock = clock
	return h
}

// Handle processes a client cancellation.
func (h CancelOrderByClientCommandHandler) Handle(ctx context.Context, command CancelOrderByClientCommand) (CancellationResult, error) {
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

	orderRepo := uow.OrderRepository()

	target, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return CancellationResult{}, err
	}

	if !target.ClientID().IsEqual(command.ClientID()) {
		return CancellationResult{}, errs.NewValueIsInvalidError("clientID")
	}

	solde, err := h.policy.ClientSolde(target, now)
	if errors.Is(err, services.ErrCancellationWindowElapsed) {
		return rejectedCancellation(order.Annuler1, "le délai d'annulation est dépassé"), nil
	}
	if errors.Is(err, services.ErrOrderNotCancellable) {
		return rejectedCancellation(order.Annuler1, "la commande ne peut plus être annulée"), nil
	}
	if err != nil {
		return CancellationResult{}, err
	}

	clientID := command.ClientID()
	if err := target.Cancel(order.Annuler1, solde, command.Reason(), &clientID, now); err != nil {
		return CancellationResult{}, err
	}

	courierID := target.Courier()
	if courierID != nil {
		assigned, err := uow.CourierRepository().Get(ctx, *courierID)
		if err != nil {
			return CancellationResult{}, err
		}
		if err := assigned.ReleaseOrder(); err != nil {
			return CancellationResult{}, err
		}
		if err := uow.CourierRepository().Update(ctx, assigned); err != nil {
			return CancellationResult{}, err
		}
	}

	if err := orderRepo.Update(ctx, target); err != nil {
		return CancellationResult{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return CancellationResult{}, err
	}

	h.recorder.write(ctx, target, courierID)

	h.logger.Info("order cancelled by client",
		"order_id", target.ID().String(),
		"client_id", command.ClientID().String(),
	)
	return CancellationResult{
		Success: true,
		Message: "commande annulée",
		Type:    order.Annuler1,
		Solde:   solde,
	}, nil
}
