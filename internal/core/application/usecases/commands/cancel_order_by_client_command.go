package commands

import (
	"errors"

	"amigos/internal/core/domain/model/kernel"
	"amigos/internal/pkg/errs"
	"amigos/internal/pkg/guard"
)

var ErrCancelOrderByClientCommandIsNotConstructed = errors.New(
	"CancelOrderByClientCommand must be created via NewCancelOrderByClientCommand constructor",
)

// CancelOrderByClientCommand is a client asking to cancel their own order
// inside the grace window. No compensation is owed for this path.
type CancelOrderByClientCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	clientID kernel.UUID
	reason   string

	guard guard.ConstructorGuard
}

// NewCancelOrderByClientCommand creates a client cancellation command.
// The reason is optional.
func NewCancelOrderByClientCommand(orderID kernel.UUID, clientID kernel.UUID, reason string) (CancelOrderByClientCommand, error) {
	command := CancelOrderByClientCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setClientID(clientID),
	); err != nil {
		return CancelOrderByClientCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderByClientCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderByClientCommandIsNotConstructed)
}

// OrderID returns the order to cancel.
func (c CancelOrderByClientCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ClientID returns the client asking for the cancellation.
func (c CancelOrderByClientCommand) ClientID() kernel.UUID {
	return c.clientID
}

// Reason returns the client's stated reason, possibly empty.
func (c CancelOrderByClientCommand) Reason() string {
	return c.reason
}

func (c *CancelOrderByClientCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}

	c.orderID = orderID
	return nil
}

func (c *CancelOrderByClientCommand) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("clientID", err)
	}

	c.clientID = clientID
	return nil
}
