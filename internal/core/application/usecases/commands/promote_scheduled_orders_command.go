package commands

import (
	"errors"

	"amigos/internal/pkg/guard"
)

var ErrPromoteScheduledOrdersCommandIsNotConstructed = errors.New(
	"PromoteScheduledOrdersCommand must be created via NewPromoteScheduledOrdersCommand constructor",
)

// PromoteScheduledOrdersCommand triggers one promotion sweep: every order
// whose scheduled instant has passed re-enters the normal pipeline.
type PromoteScheduledOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewPromoteScheduledOrdersCommand creates a promotion command.
func NewPromoteScheduledOrdersCommand() (PromoteScheduledOrdersCommand, error) {
	return PromoteScheduledOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PromoteScheduledOrdersCommand) Validate() error {
	return c.guard.Validate(ErrPromoteScheduledOrdersCommandIsNotConstructed)
}
