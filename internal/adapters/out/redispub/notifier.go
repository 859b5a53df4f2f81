// Package redispub publishes notifications onto a redis pub/sub channel.
// A downstream push gateway subscribes to the channel and fans messages
// out to devices, so the process only needs fire-and-forget semantics.
package redispub

import (
	"context"
	"encoding/json"

	"amigos/internal/core/ports"
	"amigos/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// message is the wire shape written to the channel.
type message struct {
	RecipientToken string            `json:"recipient_token"`
	Title          string            `json:"title"`
	Body           string            `json:"body"`
	Data           map[string]string `json:"data,omitempty"`
}

// RedisNotifier implements Notifier by publishing JSON payloads to a
// single channel.
type RedisNotifier struct {
	client  *redis.Client
	channel string
}

// NewRedisNotifier creates a new redis-backed notifier.
func NewRedisNotifier(client *redis.Client, channel string) (*RedisNotifier, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("client")
	}
	if channel == "" {
		return nil, errs.NewValueIsRequiredError("channel")
	}

	return &RedisNotifier{
		client:  client,
		channel: channel,
	}, nil
}

// Send publishes the notification. Publishing to a channel with no
// subscribers is not an error: redis drops the message and the caller
// moves on.
func (n *RedisNotifier) Send(ctx context.Context, notification ports.Notification) error {
	if notification.RecipientToken == "" {
		return errs.NewValueIsRequiredError("recipientToken")
	}

	payload, err := json.Marshal(message{
		RecipientToken: notification.RecipientToken,
		Title:          notification.Title,
		Body:           notification.Body,
		Data:           notification.Data,
	})
	if err != nil {
		return err
	}

	return n.client.Publish(ctx, n.channel, payload).Err()
}
