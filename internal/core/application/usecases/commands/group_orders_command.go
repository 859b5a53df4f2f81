package commands

import (
	"errors"
	"fmt"
	"time"

	"amigos/internal/pkg/guard"
)

var (
	ErrGroupOrdersCommandIsNotConstructed = errors.New(
		"GroupOrdersCommand must be created via NewGroupOrdersCommand constructor",
	)
	ErrLookbackIsInvalid = errors.New("lookback must be greater than 0")
	ErrLimitIsInvalid    = errors.New("limit must be greater than 0")
)

// GroupOrdersCommand represents one run of the grouping pipeline: scan
// recent grouping candidates and form duo/trio runs out of the compatible
// ones.
//
// Lookback bounds how old a candidate may be; Limit caps the scan for cost
// bounding (the planner's triple scan is cubic in the candidate count).
type GroupOrdersCommand struct { //nolint:recvcheck //using for validation
	lookback time.Duration
	limit    int

	guard guard.ConstructorGuard
}

// NewGroupOrdersCommand creates a grouping command.
// Lookback and limit must both be positive.
func NewGroupOrdersCommand(lookback time.Duration, limit int) (GroupOrdersCommand, error) {
	command := GroupOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setLookback(lookback),
		command.setLimit(limit),
	); err != nil {
		return GroupOrdersCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c GroupOrdersCommand) Validate() error {
	return c.guard.Validate(ErrGroupOrdersCommandIsNotConstructed)
}

// Lookback returns the candidate age window.
func (c GroupOrdersCommand) Lookback() time.Duration {
	return c.lookback
}

// Limit returns the candidate scan cap.
func (c GroupOrdersCommand) Limit() int {
	return c.limit
}

func (c *GroupOrdersCommand) setLookback(lookback time.Duration) error {
	if lookback <= 0 {
		return fmt.Errorf("%w: got %s", ErrLookbackIsInvalid, lookback)
	}

	c.lookback = lookback
	return nil
}

func (c *GroupOrdersCommand) setLimit(limit int) error {
	if limit <= 0 {
		return fmt.Errorf("%w: got %d", ErrLimitIsInvalid, limit)
	}

	c.limit = limit
	return nil
}
