package ports

import "context"

// Notification is a fire-and-forget message to a recipient's device.
// Data carries structured payload fields alongside the human-readable
// title and body.
type Notification struct {
	RecipientToken string
	Title          string
	Body           string
	Data           map[string]string
}

// Notifier defines the outbound notification contract. Delivery is best
// effort: callers log a failed Send and continue, a notification failure
// never unwinds a committed business operation.
type Notifier interface {
	Send(ctx context.Context, notification Notification) error
}
