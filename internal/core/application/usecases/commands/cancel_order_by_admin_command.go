package commands

import (
	"errors"

	"amigos/internal/core/domain/model/kernel"
	"amigos/internal/pkg/errs"
	"amigos/internal/pkg/guard"
)

var ErrCancelOrderByAdminCommandIsNotConstructed = errors.New(
	"CancelOrderByAdminCommand must be created via NewCancelOrderByAdminCommand constructor",
)

// CancelOrderByAdminCommand is an administrator closing an order for a
// client no-show. The courier is compensated like a merchant cancellation
// and the client account gets blocked in the same transaction.
type CancelOrderByAdminCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	adminID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewCancelOrderByAdminCommand creates an admin cancellation command.
// The admin identity and the reason are both mandatory: forced
// cancellations are audited.
func NewCancelOrderByAdminCommand(orderID kernel.UUID, adminID kernel.UUID, reason string) (CancelOrderByAdminCommand, error) {
	command := CancelOrderByAdminCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setAdminID(adminID),
		command.setReason(reason),
	); err != nil {
		return CancelOrderByAdminCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderByAdminCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderByAdminCommandIsNotConstructed)
}

// OrderID returns the order to cancel.
func (c CancelOrderByAdminCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AdminID returns the administrator forcing the cancellation.
func (c CancelOrderByAdminCommand) AdminID() kernel.UUID {
	return c.adminID
}

// Reason returns the audit reason.
func (c CancelOrderByAdminCommand) Reason() string {
	return c.reason
}

func (c *CancelOrderByAdminCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}

	c.orderID = orderID
	return nil
}

func (c *CancelOrderByAdminCommand) setAdminID(adminID kernel.UUID) error {
	if err := adminID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("adminID", err)
	}

	c.adminID = adminID
	return nil
}

func (c *CancelOrderByAdminCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	c.reason = reason
	return nil
}
