package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"amigos/internal/core/domain/model/kernel"
	"amigos/internal/core/domain/model/order"
	"amigos/internal/core/domain/services"
	"amigos/internal/core/ports"
	"amigos/internal/pkg/errs"
)

// GroupSummary describes one group that was committed during a run.
type GroupSummary struct {
	OrderIDs  []kernel.UUID
	GroupType order.Type
	Solde     float64
}

// GroupOrdersResult reports the outcome of one grouping run.
// Attempted counts plans produced by the planner; Grouped counts the ones
// that survived the conditional write and committed.
type GroupOrdersResult struct {
	Attempted int
	Grouped   int
	Groups    []GroupSummary
}

// GroupOrdersCommandHandler runs the grouping pipeline: scan recent
// candidates, partition them into duo/trio plans, and commit each plan in
// its own transaction.
//
// Each member is written with a conditional update that only lands while
// the row is still pending, unassigned and ungrouped. If any member of a
// plan was raced away (accepted or cancelled between the scan and the
// write), the whole plan rolls back and its members fall through to the
// next run. Notifications go out after commit and are best effort.
type GroupOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	planner    services.GroupPlanner
	notifier   ports.Notifier
	logger     *slog.Logger
	clock      func() time.Time
}

// NewGroupOrdersCommandHandler creates a handler for the grouping pipeline.
func NewGroupOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	planner services.GroupPlanner,
	notifier ports.Notifier,
	logger *slog.Logger,
) (GroupOrdersCommandHandler, error) {
	if uowFactory == nil {
		return GroupOrdersCommandHandler{}, errs.NewValueIsRequiredError("uowFactory")
	}
	if notifier == nil {
		return GroupOrdersCommandHandler{}, errs.NewValueIsRequiredError("notifier")
	}
	if logger == nil {
		return GroupOrdersCommandHandler{}, errs.NewValueIsRequiredError("logger")
	}

	return GroupOrdersCommandHandler{
		uowFactory: uowFactory,
		planner:    planner,
		notifier:   notifier,
		logger:     logger,
		clock:      time.Now,
	}, nil
}

// WithClock overrides the handler's time source. Used by tests.
func (h GroupOrdersCommandHandler) WithClock(clock func() time.Time) GroupOrdersCommandHandler {
	h.clock = clock
	return h
}

// Handle executes one grouping run.
// The candidate scan and each plan commit use separate transactions, so a
// lost race on one group never unwinds the others.
func (h GroupOrdersCommandHandler) Handle(ctx context.Context, command GroupOrdersCommand) (GroupOrdersResult, error) {
	if err := command.Validate(); err != nil {
		return GroupOrdersResult{}, err
	}

	now := h.clock()

	candidates, err := h.loadCandidates(ctx, now.Add(-command.Lookback()), now, command.Limit())
	if err != nil {
		return GroupOrdersResult{}, err
	}

	plans := h.planner.Plan(candidates, now)

	result := GroupOrdersResult{Attempted: len(plans)}
	for _, plan := range plans {
		committed, err := h.commitPlan(ctx, plan, now)
		if err != nil {
			return result, err
		}
		if !committed {
			continue
		}

		result.Grouped++
		result.Groups = append(result.Groups, GroupSummary{
			OrderIDs:  plan.MemberIDs(),
			GroupType: plan.GroupType,
			Solde:     plan.Solde,
		})
		h.notifyMembers(ctx, plan)
	}

	return result, nil
}

func (h GroupOrdersCommandHandler) loadCandidates(
	ctx context.Context, createdAfter time.Time, now time.Time, limit int,
) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	candidates, err := uow.OrderRepository().GetGroupingCandidates(ctx, createdAfter, now, limit)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	return candidates, nil
}

// commitPlan applies one plan inside its own transaction. Returns false
// without error when a member lost the conditional write and the plan was
// rolled back.
func (h GroupOrdersCommandHandler) commitPlan(
	ctx context.Context, plan services.GroupPlan, now time.Time,
) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	for _, member := range plan.Members {
		if err := member.FormGroup(plan.PeersOf(member), plan.GroupType, plan.Solde, now); err != nil {
			return false, fmt.Errorf("form group for order %s: %w", member.ID(), err)
		}

		err := orderRepo.UpdateGroupMember(ctx, member)
		if errors.Is(err, errs.ErrConcurrencyConflict) {
			h.logger.Info("group member raced away, skipping plan",
				"order_id", member.ID().String(),
				"group_type", plan.GroupType.String(),
			)
			return false, nil
		}
		if err != nil {
			return false, err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// notifyMembers fans out one notification per group member. A failed send
// is logged and skipped.
func (h GroupOrdersCommandHandler) notifyMembers(ctx context.Context, plan services.GroupPlan) {
	for _, member := range plan.Members {
		notification := ports.Notification{
			RecipientToken: member.ClientID().String(),
			Title:          "Commande groupée",
			Body:           fmt.Sprintf("Votre commande fait partie d'un groupe %s", plan.GroupType),
			Data: map[string]string{
				"order_id":    member.ID().String(),
				"group_type":  plan.GroupType.String(),
				"group_solde": fmt.Sprintf("%.3f", plan.Solde),
			},
		}
		if err := h.notifier.Send(ctx, notification); err != nil {
			h.logger.Warn("group notification failed",
				"order_id", member.ID().String(),
				"error", err,
			)
		}
	}
}
