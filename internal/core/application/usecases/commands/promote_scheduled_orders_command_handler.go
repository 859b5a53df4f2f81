package commands

import (
	"context"
	"log/slog"
	"time"

	"amigos/internal/pkg/errs"
)

// PromoteScheduledOrdersCommandHandler clears elapsed processing delays in
// bulk so deferred orders become visible to grouping and acceptance again.
type PromoteScheduledOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	logger     *slog.Logger
	clock      func() time.Time
}

// NewPromoteScheduledOrdersCommandHandler creates a handler for the
// promotion sweep.
func NewPromoteScheduledOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	logger *slog.Logger,
) (PromoteScheduledOrdersCommandHandler, error) {
	if uowFactory == nil {
		return PromoteScheduledOrdersCommandHandler{}, errs.NewValueIsRequiredError("uowFactory")
	}
	if logger == nil {
		return PromoteScheduledOrdersCommandHandler{}, errs.NewValueIsRequiredError("logger")
	}

	return PromoteScheduledOrdersCommandHandler{
		uowFactory: uowFactory,
		logger:     logger,
		clock:      time.Now,
	}, nil
}

// WithClock overrides the handler's time source. Used by tests.
func (h PromoteScheduledOrdersCommandHandler) WithClock(clock func() time.Time) PromoteScheduledOrdersCommandHandler {
	h.clock = clock
	return h
}

// Handle runs one promotion sweep and returns how many orders were promoted.
func (h PromoteScheduledOrdersCommandHandler) Handle(ctx context.Context, command PromoteScheduledOrdersCommand) (int64, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	promoted, err := uow.OrderRepository().PromoteScheduled(ctx, h.clock())
	if err != nil {
		return 0, err
	}

	if err := uow.Commit(ctx); err != nil {
		return 0, err
	}

	if promoted > 0 {
		h.logger.Info("promoted scheduled orders", "count", promoted)
	}
	return promoted, nil
}
