package commands

import (
	"context"
	"time"

	"amigos/internal/core/domain/model/kernel"
	"amigos/internal/core/domain/model/order"
	"amigos/internal/core/domain/model/tariff"
	"amigos/internal/core/domain/services"
	"amigos/internal/core/ports"
)

// forcedCancellation applies the shared part of the merchant and admin
// cancellation paths inside an already-open transaction: price the courier
// compensation, terminate the order, release the courier and accrue the
// compensation on their daily cancellation balance.
//
// Tariff configuration is read outside the transaction; it is reference
// data and does not participate in write consistency.
type forcedCancellation struct {
	tariffs      ports.TariffRepository
	policy       services.CancellationPolicy
	remuneration services.RemunerationCalculator
}

type forcedCancellationOutcome struct {
	Solde     float64
	CourierID *kernel.UUID
}

func (f forcedCancellation) apply(
	ctx context.Context,
	uow CancelUoW,
	target *order.Order,
	ctype order.CancellationType,
	reason string,
	cancelledBy kernel.UUID,
	now time.Time,
) (forcedCancellationOutcome, error) {
	solde, err := f.compensation(ctx, target)
	if err != nil {
		return forcedCancellationOutcome{}, err
	}

	if err := target.Cancel(ctype, solde, reason, &cancelledBy, now); err != nil {
		return forcedCancellationOutcome{}, err
	}

	courierID := target.Courier()
	if courierID != nil {
		assigned, err := uow.CourierRepository().Get(ctx, *courierID)
		if err != nil {
			return forcedCancellationOutcome{}, err
		}
		if err := assigned.ReleaseOrder(); err != nil {
			return forcedCancellationOutcome{}, err
		}
		if err := assigned.AccrueCancellationSolde(now, solde); err != nil {
			return forcedCancellationOutcome{}, err
		}
		if err := uow.CourierRepository().Update(ctx, assigned); err != nil {
			return forcedCancellationOutcome{}, err
		}
	}

	if err := uow.OrderRepository().Update(ctx, target); err != nil {
		return forcedCancellationOutcome{}, err
	}

	return forcedCancellationOutcome{Solde: solde, CourierID: courierID}, nil
}

// compensation prices the courier compensation for a forced cancellation:
// 30% of the montant course, plus the partner payout in cash mode.
func (f forcedCancellation) compensation(ctx context.Context, target *order.Order) (float64, error) {
	city, err := f.tariffs.GetCity(ctx, target.City())
	if err != nil {
		return 0, err
	}

	zone, err := f.tariffs.GetZone(ctx, target.ZoneNumber())
	if err != nil {
		return 0, err
	}

	breakdown, err := f.remuneration.Calculate(target, city, zone, tariff.ModeUnknown)
	if err != nil {
		return 0, err
	}

	return f.policy.CompensationSolde(breakdown.PartnerPayout, breakdown.MontantCourse, target.PaymentMode()), nil
}
