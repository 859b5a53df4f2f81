package commands

import (
	"context"
	"fmt"
	"log/slog"

	"amigos/internal/core/domain/model/order"
	"amigos/internal/core/domain/services"
	"amigos/internal/core/ports"
	"amigos/internal/pkg/errs"
)

// AcceptOrderCommandHandler binds a courier to an order, or to a whole
// group when the order was grouped: group members are accepted atomically
// by the same courier or not at all.
type AcceptOrderCommandHandler struct {
	uowFactory AcceptUoWFactory
	policy     services.AcceptancePolicy
	logger     *slog.Logger
}

// NewAcceptOrderCommandHandler creates a handler for order acceptance.
func NewAcceptOrderCommandHandler(
	uowFactory AcceptUoWFactory,
	policy services.AcceptancePolicy,
	logger *slog.Logger,
) (AcceptOrderCommandHandler, error) {
	if uowFactory == nil {
		return AcceptOrderCommandHandler{}, errs.NewValueIsRequiredError("uowFactory")
	}
	if logger == nil {
		return AcceptOrderCommandHandler{}, errs.NewValueIsRequiredError("logger")
	}

	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		logger:     logger,
	}, nil
}

// Handle processes an acceptance. The courier must pass the acceptance
// policy for the whole load: a grouped order pulls in its peers, revalidates
// the group geometry, and books capacity for every member at once.
func (h AcceptOrderCommandHandler) Handle(ctx context.Context, command AcceptOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	courierRepo := uow.CourierRepository()

	target, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	accepting, err := courierRepo.Get(ctx, command.CourierID())
	if err != nil {
		return err
	}

	if err := h.policy.CanAccept(accepting, target); err != nil {
		return err
	}

	members, err := h.loadGroup(ctx, orderRepo, target)
	if err != nil {
		return err
	}

	if err := accepting.CanAcceptOrders(len(members)); err != nil {
		return err
	}

	for _, member := range members {
		if err := member.Accept(accepting.ID()); err != nil {
			return fmt.Errorf("accept order %s: %w", member.ID(), err)
		}
		if err := orderRepo.Update(ctx, member); err != nil {
			return err
		}
	}

	if err := accepting.AcceptOrders(len(members)); err != nil {
		return err
	}
	if err := courierRepo.Update(ctx, accepting); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.Info("order accepted",
		"order_id", target.ID().String(),
		"courier_id", accepting.ID().String(),
		"group_size", len(members),
	)
	return nil
}

// loadGroup returns the target together with its peers when grouped, after
// revalidating that the stored group still satisfies the geometry rules.
func (h AcceptOrderCommandHandler) loadGroup(
	ctx context.Context, orderRepo ports.OrderRepository, target *order.Order,
) ([]*order.Order, error) {
	if !target.IsGrouped() {
		return []*order.Order{target}, nil
	}

	peers, err := orderRepo.GetByIDs(ctx, target.GroupPeers())
	if err != nil {
		return nil, err
	}

	members := append([]*order.Order{target}, peers...)
	if err := h.policy.ValidateGroupGeometry(members); err != nil {
		return nil, err
	}
	return members, nil
}
