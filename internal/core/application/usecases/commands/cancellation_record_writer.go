package commands

import (
	"context"
	"log/slog"

	"amigos/internal/core/domain/model/cancellation"
	"amigos/internal/core/domain/model/kernel"
	"amigos/internal/core/domain/model/order"
)

// cancellationRecordWriter appends the accounting record of a committed
// cancellation in its own transaction. The cancellation itself already
// committed, so a failed record write is logged and absorbed; the daily
// mass query tolerates a missing row better than the caller tolerates a
// rolled-back cancellation.
type cancellationRecordWriter struct {
	uowFactory RecordUoWFactory
	logger     *slog.Logger
}

func (w cancellationRecordWriter) write(ctx context.Context, cancelled *order.Order, courierID *kernel.UUID) {
	info := cancelled.Cancellation()
	record, err := cancellation.NewRecord(
		kernel.NewUUID(),
		cancelled.ID(),
		courierID,
		info.Type,
		info.Solde,
		cancelled.PaymentMode(),
		info.Reason,
		*info.CancelledAt,
	)
	if err != nil {
		w.logger.Error("building cancellation record failed",
			"order_id", cancelled.ID().String(),
			"error", err,
		)
		return
	}

	uow := w.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		w.logger.Error("cancellation record transaction failed",
			"order_id", cancelled.ID().String(),
			"error", err,
		)
		return
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.CancellationRepository().Add(ctx, record); err != nil {
		w.logger.Error("writing cancellation record failed",
			"order_id", cancelled.ID().String(),
			"error", err,
		)
		return
	}

	if err := uow.Commit(ctx); err != nil {
		w.logger.Error("committing cancellation record failed",
			"order_id", cancelled.ID().String(),
			"error", err,
		)
	}
}
