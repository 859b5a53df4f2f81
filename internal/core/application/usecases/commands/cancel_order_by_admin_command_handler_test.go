package commands_test

import (
	"testing"

	"amigos/internal/core/application/usecases/commands"
	"amigos/internal/core/domain/model/client"
	"amigos/internal/core/domain/model/kernel"
	"amigos/internal/core/domain/model/order"
	"amigos/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminCancelHandler(
	t *testing.T,
	factory *MockCancelUoWFactory,
	tariffs *MockTariffRepository,
	recordFactory *MockRecordUoWFactory,
) commands.CancelOrderByAdminCommandHandler {
	t.Helper()

	handler, err := commands.NewCancelOrderByAdminCommandHandler(
		factory,
		tariffs,
		services.NewCancellationPolicy(),
		services.NewRemunerationCalculator(),
		recordFactory,
		testLogger(),
	)
	require.NoError(t, err)
	return handler.WithClock(testClock())
}

func TestCancelOrderByAdminCommandHandler_Handle_BlocksClient(t *testing.T) {
	ctx := t.Context()
	target := testOrder(t, order.Flags{})
	assigned := testCourier(t)
	require.NoError(t, assigned.AcceptOrders(1))
	require.NoError(t, target.Accept(assigned.ID()))

	customer, err := client.NewClient(target.ClientID(), "Sara")
	require.NoError(t, err)

	adminID := kernel.NewUUID()
	cmd, err := commands.NewCancelOrderByAdminCommand(target.ID(), adminID, "client injoignable")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", ctx, target.ID()).Return(target, nil).Once()
	orderRepo.On("Update", ctx, target).Return(nil).Once()

	courierRepo := new(MockCourierRepository)
	courierRepo.On("Get", ctx, assigned.ID()).Return(assigned, nil).Once()
	courierRepo.On("Update", ctx, assigned).Return(nil).Once()

	clientRepo := new(MockClientRepository)
	clientRepo.On("Get", ctx, target.ClientID()).Return(customer, nil).Once()
	clientRepo.On("Update", ctx, customer).Return(nil).Once()

	uow := new(MockCancelUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("CourierRepository").Return(courierRepo)
	uow.On("ClientRepository").Return(clientRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil)

	factory := new(MockCancelUoWFactory)
	factory.On("Create").Return(uow).Once()

	tariffs := new(MockTariffRepository)
	expectCasablancaTariffs(ctx, t, tariffs)

	recordFactory := new(MockRecordUoWFactory)
	expectRecordWrite(ctx, recordFactory)

	handler := newAdminCancelHandler(t, factory, tariffs, recordFactory)

	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, order.Annuler3, result.Type)
	assert.InDelta(t, 67.6, result.Solde, 0.0001)

	assert.Equal(t, order.StatusCancelled, target.Status())
	info := target.Cancellation()
	assert.Equal(t, order.Annuler3, info.Type)
	require.NotNil(t, info.CancelledBy)
	assert.True(t, info.CancelledBy.IsEqual(adminID))

	assert.True(t, customer.IsBlocked())
	assert.Equal(t, "client injoignable", customer.BlockedReason())

	balance, ok := assigned.DailyBalanceFor(testInstant)
	require.True(t, ok)
	assert.InDelta(t, 67.6, balance.SoldeAnnulation, 0.0001)

	orderRepo.AssertExpectations(t)
	courierRepo.AssertExpectations(t)
	clientRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCancelOrderByAdminCommandHandler_Handle_AlreadyDeliveredRejected(t *testing.T) {
	ctx := t.Context()
	target := testOrder(t, order.Flags{})
	assigned := testCourier(t)
	require.NoError(t, target.Accept(assigned.ID()))
	require.NoError(t, target.StartPreparing())
	require.NoError(t, target.MarkCollected())
	require.NoError(t, target.StartDelivery())
	require.NoError(t, target.Deliver())

	cmd, err := commands.NewCancelOrderByAdminCommand(target.ID(), kernel.NewUUID(), "client injoignable")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", ctx, target.ID()).Return(target, nil).Once()

	uow := new(MockCancelUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Rollback", ctx).Return(nil)

	factory := new(MockCancelUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newAdminCancelHandler(t, factory, new(MockTariffRepository), new(MockRecordUoWFactory))

	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, order.StatusDelivered, target.Status())
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestNewCancelOrderByAdminCommand_MissingReason(t *testing.T) {
	_, err := commands.NewCancelOrderByAdminCommand(kernel.NewUUID(), kernel.NewUUID(), "")
	require.Error(t, err)
}
