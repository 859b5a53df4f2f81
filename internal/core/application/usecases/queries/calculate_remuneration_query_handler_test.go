package queries_test

import (
	"log/slog"
	"testing"
	"time"

	"amigos/internal/core/application/usecases/queries"
	"amigos/internal/core/domain/model/kernel"
	"amigos/internal/core/domain/model/order"
	"amigos/internal/core/domain/model/tariff"
	"amigos/internal/core/domain/services"
	"amigos/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testInstant = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testOrder(t *testing.T, flags order.Flags) *order.Order {
	t.Helper()

	pizza, err := order.NewItem("Pizza Margherita", 30, 45, 2)
	require.NoError(t, err)
	coca, err := order.NewItem("Coca-Cola", 4, 7, 1)
	require.NoError(t, err)

	pickup, err := kernel.NewGeoPoint(33.5731, -7.5898)
	require.NoError(t, err)
	dropoff, err := kernel.NewGeoPoint(33.5892, -7.6036)
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		[]kernel.UUID{kernel.NewUUID()},
		[]order.Item{pizza, coca},
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

func testCity(t *testing.T) *tariff.City {
	t.Helper()

	city, err := tariff.NewCity("Casablanca", 1.2, []int{1, 2, 3})
	require.NoError(t, err)
	return city
}

func testZone(t *testing.T) *tariff.Zone {
	t.Helper()

	zone, err := tariff.NewZone(2, 3, 6, 25, 2, map[order.Type]float64{
		order.TypeA1: 10,
		order.TypeA2: 11,
		order.TypeA3: 12,
		order.TypeA4: 14,
	})
	require.NoError(t, err)
	return zone
}

func TestCalculateRemunerationQueryHandler_Handle_DerivedMode(t *testing.T) {
	ctx := t.Context()
	target := testOrder(t, order.Flags{})

	orders := new(MockOrderRepository)
	orders.On("Get", ctx, target.ID()).Return(target, nil).Once()

	tariffs := new(MockTariffRepository)
	tariffs.On("GetCity", ctx, "Casablanca").Return(testCity(t), nil).Once()
	tariffs.On("GetZone", ctx, 2).Return(testZone(t), nil).Once()

	handler, err := queries.NewCalculateRemunerationQueryHandler(
		orders, tariffs, services.NewRemunerationCalculator())
	require.NoError(t, err)

	query, err := queries.NewCalculateRemunerationQuery(target.ID(), tariff.ModeUnknown)
	require.NoError(t, err)

	response, err := handler.Handle(ctx, query)

	require.NoError(t, err)
	assert.Equal(t, "Mode_1", response.Mode)
	assert.InDelta(t, 12.0, response.MontantCourse, 0.0001)
	assert.InDelta(t, 12.0, response.DelivererRemuneration, 0.0001)
	assert.InDelta(t, 64.0, response.PartnerPayout, 0.0001)
	assert.InDelta(t, 97.0, response.ClientAmount, 0.0001)
	assert.InDelta(t, 21.0, response.PlatformRevenue, 0.0001)

	orders.AssertExpectations(t)
	tariffs.AssertExpectations(t)
}

func TestCalculateRemunerationQueryHandler_Handle_ExplicitMode(t *testing.T) {
	ctx := t.Context()
	target := testOrder(t, order.Flags{})

	orders := new(MockOrderRepository)
	orders.On("Get", ctx, target.ID()).Return(target, nil).Once()

	tariffs := new(MockTariffRepository)
	tariffs.On("GetCity", ctx, "Casablanca").Return(testCity(t), nil).Once()
	tariffs.On("GetZone", ctx, 2).Return(testZone(t), nil).Once()

	handler, err := queries.NewCalculateRemunerationQueryHandler(
		orders, tariffs, services.NewRemunerationCalculator())
	require.NoError(t, err)

	query, err := queries.NewCalculateRemunerationQuery(target.ID(), tariff.Mode4)
	require.NoError(t, err)

	response, err := handler.Handle(ctx, query)

	require.NoError(t, err)
	assert.Equal(t, "Mode_4", response.Mode)
	assert.InDelta(t, 20.4, response.DelivererRemuneration, 0.0001) // 12 x 1.7
	assert.InDelta(t, 76.8, response.PartnerPayout, 0.0001)         // 64 x 1.2
	assert.InDelta(t, 121.25, response.ClientAmount, 0.0001)        // 97 x 1.25
}

func TestCalculateRemunerationQueryHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	missingID := kernel.NewUUID()

	orders := new(MockOrderRepository)
	orders.On("Get", ctx, missingID).Return(nil, errs.NewObjectNotFoundError("order", missingID)).Once()

	handler, err := queries.NewCalculateRemunerationQueryHandler(
		orders, new(MockTariffRepository), services.NewRemunerationCalculator())
	require.NoError(t, err)

	query, err := queries.NewCalculateRemunerationQuery(missingID, tariff.ModeUnknown)
	require.NoError(t, err)

	_, err = handler.Handle(ctx, query)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestNewCalculateRemunerationQuery_InvalidMode(t *testing.T) {
	_, err := queries.NewCalculateRemunerationQuery(kernel.NewUUID(), tariff.PaymentMode(99))
	require.Error(t, err)
}
