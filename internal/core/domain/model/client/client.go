package client

import (
	"errors"
	"time"

	"amigos/internal/core/domain/model/kernel"
	"amigos/internal/pkg/errs"
	"amigos/internal/pkg/guard"
)

var (
	// ErrNameIsRequired is returned when attempting to create a client without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrClientIsNotConstructed is returned when using an improperly initialized Client.
	ErrClientIsNotConstructed = errors.New("Client must be created via NewClient constructor")
	// ErrClientIsBlocked is returned when a blocked client tries to act on the platform.
	ErrClientIsBlocked = errors.New("client is blocked")
)

// Client represents an ordering customer. The aggregate mostly exists to
// carry the blocking state: an admin-forced cancellation blocks the client
// from placing further orders.
type Client struct {
	id            kernel.UUID
	name          string
	isBlocked     bool
	blockedReason string
	blockedAt     *time.Time

	guard guard.ConstructorGuard
}

// NewClient creates an unblocked client.
func NewClient(id kernel.UUID, name string) (*Client, error) {
	c := &Client{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreClient reconstructs a client from persistence, including its
// blocking state.
func RestoreClient(
	id kernel.UUID,
	name string,
	isBlocked bool,
	blockedReason string,
	blockedAt *time.Time,
) (*Client, error) {
	c, err := NewClient(id, name)
	if err != nil {
		return nil, err
	}

	c.isBlocked = isBlocked
	c.blockedReason = blockedReason
	c.blockedAt = blockedAt
	return c, nil
}

// Validate ensures the Client was created via a constructor.
func (c *Client) Validate() error {
	return c.guard.Validate(ErrClientIsNotConstructed)
}

// IsEqual compares two clients by their unique identifiers.
func (c *Client) IsEqual(other *Client) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the client's unique identifier.
func (c *Client) ID() kernel.UUID {
	return c.id
}

// Name returns the client's name.
func (c *Client) Name() string {
	return c.name
}

// IsBlocked reports whether the client is blocked from ordering.
func (c *Client) IsBlocked() bool {
	return c.isBlocked
}

// BlockedReason returns why the client was blocked, or "" when unblocked.
func (c *Client) BlockedReason() string {
	return c.blockedReason
}

// BlockedAt returns when the client was blocked, or nil when unblocked.
func (c *Client) BlockedAt() *time.Time {
	return c.blockedAt
}

// Block prevents the client from placing further orders. Blocking an
// already-blocked client keeps the original reason and instant.
func (c *Client) Block(reason string, at time.Time) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	if at.IsZero() {
		return errs.NewValueIsRequiredError("at")
	}
	if c.isBlocked {
		return nil
	}

	c.isBlocked = true
	c.blockedReason = reason
	c.blockedAt = &at
	return nil
}

// Unblock lifts the block.
func (c *Client) Unblock() {
	c.isBlocked = false
	c.blockedReason = ""
	c.blockedAt = nil
}

func (c *Client) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Client) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}
