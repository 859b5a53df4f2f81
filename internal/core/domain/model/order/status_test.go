package order_test

import (
	"testing"

	"amigos/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusValidate(t *testing.T) {
	tests := []struct {
		name    string
		status  order.Status
		wantErr bool
	}{
		{"pending is valid", order.StatusPending, false},
		{"accepted is valid", order.StatusAccepted, false},
		{"preparing is valid", order.StatusPreparing, false},
		{"collected is valid", order.StatusCollected, false},
		{"in delivery is valid", order.StatusInDelivery, false},
		{"delivered is valid", order.StatusDelivered, false},
		{"cancelled is valid", order.StatusCancelled, false},
		{"unknown is invalid", order.StatusUnknown, true},
		{"out of range is invalid", order.Status(42), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.status.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "pending", order.StatusPending.String())
	assert.Equal(t, "accepted", order.StatusAccepted.String())
	assert.Equal(t, "preparing", order.StatusPreparing.String())
	assert.Equal(t, "collected", order.StatusCollected.String())
	assert.Equal(t, "in_delivery", order.StatusInDelivery.String())
	assert.Equal(t, "delivered", order.StatusDelivered.String())
	assert.Equal(t, "cancelled", order.StatusCancelled.String())
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, order.StatusDelivered.IsTerminal())
	assert.True(t, order.StatusCancelled.IsTerminal())
	assert.False(t, order.StatusPending.IsTerminal())
	assert.False(t, order.StatusInDelivery.IsTerminal())
}

func TestStatusTransitions(t *testing.T) {
	t.Run("should walk the full happy path", func(t *testing.T) {
		s := order.StatusPending

		s, err := s.Accept()
		require.NoError(t, err)
		assert.Equal(t, order.StatusAccepted, s)

		s, err = s.StartPreparing()
		require.NoError(t, err)
		assert.Equal(t, order.StatusPreparing, s)

		s, err = s.MarkCollected()
		require.NoError(t, err)
		assert.Equal(t, order.StatusCollected, s)

		s, err = s.StartDelivery()
		require.NoError(t, err)
		assert.Equal(t, order.StatusInDelivery, s)

		s, err = s.Deliver()
		require.NoError(t, err)
		assert.Equal(t, order.StatusDelivered, s)
	})

	t.Run("should allow collection without a preparing step", func(t *testing.T) {
		s, err := order.StatusAccepted.MarkCollected()

		require.NoError(t, err)
		assert.Equal(t, order.StatusCollected, s)
	})

	t.Run("should reject accepting a non-pending order", func(t *testing.T) {
		_, err := order.StatusInDelivery.Accept()
		require.Error(t, err)

		_, err = order.StatusDelivered.Accept()
		require.Error(t, err)
	})

	t.Run("should reject delivering before the delivery started", func(t *testing.T) {
		_, err := order.StatusCollected.Deliver()
		require.Error(t, err)
	})

	t.Run("should cancel from any live status", func(t *testing.T) {
		for _, from := range []order.Status{
			order.StatusPending,
			order.StatusAccepted,
			order.StatusPreparing,
			order.StatusCollected,
			order.StatusInDelivery,
		} {
			s, err := from.Cancel()
			require.NoError(t, err)
			assert.Equal(t, order.StatusCancelled, s)
		}
	})

	t.Run("should reject cancelling a terminal order", func(t *testing.T) {
		_, err := order.StatusDelivered.Cancel()
		require.Error(t, err)

		_, err = order.StatusCancelled.Cancel()
		require.Error(t, err)
	})
}
