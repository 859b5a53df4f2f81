package commands_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"amigos/internal/core/domain/model/courier"
	"amigos/internal/core/domain/model/kernel"
	"amigos/internal/core/domain/model/order"
	"amigos/internal/core/domain/model/tariff"

	"github.com/stretchr/testify/require"
)

var testInstant = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func testClock() func() time.Time {
	return func() time.Time { return testInstant }
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testItems(t *testing.T) []order.Item {
	t.Helper()

	pizza, err := order.NewItem("Pizza Margherita", 30, 45, 2)
	require.NoError(t, err)
	coca, err := order.NewItem("Coca-Cola", 4, 7, 1)
	require.NoError(t, err)

	return []order.Item{pizza, coca}
}

func testOrder(t *testing.T, flags order.Flags) *order.Order {
	t.Helper()

	pickup, err := kernel.NewGeoPoint(33.5731, -7.5898)
	require.NoError(t, err)
	dropoff, err := kernel.NewGeoPoint(33.5892, -7.6036)
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		[]kernel.UUID{kernel.NewUUID()},
		testItems(t),
		2,
		"Casablanca",
		pickup,
		dropoff,
		order.PaymentEspeces,
		flags,
		testInstant.Add(-30*time.Second),
	)
	require.NoError(t, err)

	return o
}

func testCourier(t *testing.T) *courier.Courier {
	t.Helper()

	c, err := courier.NewCourier(kernel.NewUUID(), "Hamza")
	require.NoError(t, err)
	return c
}

func testCity(t *testing.T) *tariff.City {
	t.Helper()

	city, err := tariff.NewCity("Casablanca", 1.2, []int{1, 2, 3})
	require.NoError(t, err)
	return city
}

func testZone(t *testing.T) *tariff.Zone {
	t.Helper()

	zone, err := tariff.NewZone(2, 3, 6, 25, 20, map[order.Type]float64{
		order.TypeA1: 10,
		order.TypeA2: 11,
		order.TypeA3: 12,
		order.TypeA4: 14,
	})
	require.NoError(t, err)
	return zone
}
