package queries_test

import (
	"context"
	"testing"
	"time"

	"amigos/internal/adapters/out/postgres/cancellationrepo"
	"amigos/internal/adapters/out/postgres/courierrepo"
	"amigos/internal/adapters/out/postgres/orderrepo"
	"amigos/internal/core/application/usecases/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ReadModelIntegrationTestSuite exercises the raw-SQL read handlers against
// a PostgreSQL container, seeding rows through the adapter DTOs.
type ReadModelIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
}

func (suite *ReadModelIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&courierrepo.CourierDTO{},
		&courierrepo.DailyBalanceDTO{},
		&cancellationrepo.RecordDTO{},
	)
	suite.Require().NoError(err)
}

func (suite *ReadModelIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE orders, order_items, couriers, courier_daily_balances, cancellation_records").Error
	suite.Require().NoError(err)
}

func (suite *ReadModelIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ReadModelIntegrationTestSuite) TestGetCouriers_SortsByName() {
	ctx := context.Background()

	couriers := []courierrepo.CourierDTO{
		{ID: uuid.New(), Name: "Sara", Status: "busy", ActiveOrders: 2},
		{ID: uuid.New(), Name: "Hamza", Status: "free", ActiveOrders: 0},
	}
	suite.Require().NoError(suite.db.Create(&couriers).Error)

	handler := queries.NewGetCouriersQueryHandler(suite.db)
	responses, err := handler.Handle(ctx, queries.NewGetCouriersQuery())
	suite.Require().NoError(err)

	suite.Require().Len(responses, 2)
	suite.Equal("Hamza", responses[0].Name)
	suite.Equal("free", responses[0].Status)
	suite.Zero(responses[0].ActiveOrders)
	suite.Equal("Sara", responses[1].Name)
	suite.Equal(2, responses[1].ActiveOrders)
}

func (suite *ReadModelIntegrationTestSuite) TestGetActiveOrders_ExcludesTerminalStatuses() {
	ctx := context.Background()
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	courierID := uuid.New()

	orders := []orderrepo.OrderDTO{
		suite.newOrderRow("pending", "A1", nil, base),
		suite.newOrderRow("in_delivery", "A2", &courierID, base.Add(time.Minute)),
		suite.newOrderRow("delivered", "A1", &courierID, base.Add(2*time.Minute)),
		suite.newOrderRow("cancelled", "A1", nil, base.Add(3*time.Minute)),
	}
	suite.Require().NoError(suite.db.Create(&orders).Error)

	handler := queries.NewGetActiveOrdersQueryHandler(suite.db)
	responses, err := handler.Handle(ctx, queries.NewGetActiveOrdersQuery())
	suite.Require().NoError(err)

	suite.Require().Len(responses, 2)
	suite.Equal("pending", responses[0].Status)
	suite.Nil(responses[0].CourierID)
	suite.Equal("in_delivery", responses[1].Status)
	suite.Require().NotNil(responses[1].CourierID)
	suite.Equal(courierID.String(), responses[1].CourierID.String())
	suite.InDelta(97, responses[0].P2Total, 0.001)
}

func (suite *ReadModelIntegrationTestSuite) TestGetCancellationMass_SumsPerCourierForTheDay() {
	ctx := context.Background()
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	courierA := uuid.New()
	courierB := uuid.New()

	records := []cancellationrepo.RecordDTO{
		suite.newRecordRow(&courierA, 67.6, day.Add(10*time.Hour)),
		suite.newRecordRow(&courierA, 12.4, day.Add(15*time.Hour)),
		suite.newRecordRow(&courierB, 5, day.Add(9*time.Hour)),
		// Outside the queried day.
		suite.newRecordRow(&courierA, 99, day.Add(25*time.Hour)),
		// Cancelled before assignment; excluded from the courier mass.
		suite.newRecordRow(nil, 3, day.Add(11*time.Hour)),
	}
	suite.Require().NoError(suite.db.Create(&records).Error)

	query, err := queries.NewGetCancellationMassQuery(day.Add(13 * time.Hour))
	suite.Require().NoError(err)

	handler := queries.NewGetCancellationMassQueryHandler(suite.db)
	responses, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(responses, 2)
	suite.Equal(courierA.String(), responses[0].CourierID.String())
	suite.InDelta(80, responses[0].TotalSolde, 0.001)
	suite.Equal(2, responses[0].Records)
	suite.Equal(courierB.String(), responses[1].CourierID.String())
	suite.InDelta(5, responses[1].TotalSolde, 0.001)
}

func (suite *ReadModelIntegrationTestSuite) newOrderRow(
	status string, orderType string, courierID *uuid.UUID, createdAt time.Time,
) orderrepo.OrderDTO {
	return orderrepo.OrderDTO{
		ID:          uuid.New(),
		ClientID:    uuid.New(),
		Provider1ID: uuid.New(),
		ZoneNumber:  2,
		City:        "Casablanca",
		PickupLat:   33.5731,
		PickupLng:   -7.5898,
		DropoffLat:  33.5892,
		DropoffLng:  -7.6036,
		PaymentMode: "especes",
		Status:      status,
		OrderType:   orderType,
		CourierID:   courierID,
		P1Total:     64,
		P2Total:     97,
		CreatedAt:   createdAt,
	}
}

func (suite *ReadModelIntegrationTestSuite) newRecordRow(
	courierID *uuid.UUID, solde float64, occurredAt time.Time,
) cancellationrepo.RecordDTO {
	return cancellationrepo.RecordDTO{
		ID:          uuid.New(),
		OrderID:     uuid.New(),
		CourierID:   courierID,
		Type:        "ANNULER_2",
		Solde:       solde,
		PaymentMode: "especes",
		Reason:      "article indisponible",
		OccurredAt:  occurredAt,
	}
}

func TestReadModelIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ReadModelIntegrationTestSuite))
}
