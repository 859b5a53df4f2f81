package commands

import (
	"errors"

	"amigos/internal/core/domain/model/kernel"
	"amigos/internal/pkg/errs"
	"amigos/internal/pkg/guard"
)

var ErrCancelOrderByMerchantCommandIsNotConstructed = errors.New(
	"CancelOrderByMerchantCommand must be created via NewCancelOrderByMerchantCommand constructor",
)

// CancelOrderByMerchantCommand is a provider pulling out of an order, an
// unavailable item being the typical case. The courier is compensated.
type CancelOrderByMerchantCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	merchantID kernel.UUID
	reason     string

	guard guard.ConstructorGuard
}

// NewCancelOrderByMerchantCommand creates a merchant cancellation command.
// The reason is mandatory for this path.
func NewCancelOrderByMerchantCommand(orderID kernel.UUID, merchantID kernel.UUID, reason string) (CancelOrderByMerchantCommand, error) {
	command := CancelOrderByMerchantCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setMerchantID(merchantID),
		command.setReason(reason),
	); err != nil {
		return CancelOrderByMerchantCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderByMerchantCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderByMerchantCommandIsNotConstructed)
}

// OrderID returns the order to cancel.
func (c CancelOrderByMerchantCommand) OrderID() kernel.UUID {
	return c.orderID
}

// MerchantID returns the provider initiating the cancellation.
func (c CancelOrderByMerchantCommand) MerchantID() kernel.UUID {
	return c.merchantID
}

// Reason returns the provider's stated reason.
func (c CancelOrderByMerchantCommand) Reason() string {
	return c.reason
}

func (c *CancelOrderByMerchantCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}

	c.orderID = orderID
	return nil
}

func (c *CancelOrderByMerchantCommand) setMerchantID(merchantID kernel.UUID) error {
	if err := merchantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("merchantID", err)
	}

	c.merchantID = merchantID
	return nil
}

func (c *CancelOrderByMerchantCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	c.reason = reason
	return nil
}
