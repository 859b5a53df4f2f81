package cmd

import (
	"log/slog"

	"amigos/internal/adapters/in/http"
	"amigos/internal/adapters/out/postgres"
	"amigos/internal/adapters/out/postgres/cancellationrepo"
	"amigos/internal/adapters/out/postgres/clientrepo"
	"amigos/internal/adapters/out/postgres/courierrepo"
	"amigos/internal/adapters/out/postgres/orderrepo"
	"amigos/internal/adapters/out/postgres/tariffrepo"
	"amigos/internal/adapters/out/redispub"
	"amigos/internal/core/application/usecases/commands"
	"amigos/internal/core/application/usecases/queries"
	"amigos/internal/core/domain/model/kernel"
	"amigos/internal/core/domain/services"
	"amigos/internal/core/ports"
	"amigos/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters, domain services and use case handlers.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	tariffs    ports.TariffRepository
	notifier   ports.Notifier
	logger     *slog.Logger

	rules        services.CompatibilityRules
	acceptance   services.AcceptancePolicy
	cancellation services.CancellationPolicy
	remuneration services.RemunerationCalculator
	planner      services.GroupPlanner
}

// NewCompositionRoot creates the object graph shared by the HTTP server
// and the background jobs.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	redisClient := redis.NewClient(&redis.Options{Addr: config.RedisAddr})
	notifier, err := redispub.NewRedisNotifier(redisClient, config.NotificationsChannel)
	if err != nil {
		return CompositionRoot{}, err
	}

	rules := services.NewCompatibilityRules()

	return CompositionRoot{
		config:       config,
		gormDB:       gormDB,
		uowFactory:   postgres.NewGormUnitOfWorkFactory(gormDB),
		tariffs:      tariffrepo.NewGormTariffRepository(gormDB),
		notifier:     notifier,
		logger:       logger,
		rules:        rules,
		acceptance:   services.NewAcceptancePolicy(rules),
		cancellation: services.NewCancellationPolicy(),
		remuneration: services.NewRemunerationCalculator(),
		planner:      services.NewGroupPlanner(rules),
	}, nil
}

// MigrateDatabase creates or updates the schema for every persisted model.
func (c *CompositionRoot) MigrateDatabase() error {
	return c.gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&courierrepo.CourierDTO{},
		&courierrepo.DailyBalanceDTO{},
		&clientrepo.ClientDTO{},
		&cancellationrepo.RecordDTO{},
		&tariffrepo.CityDTO{},
		&tariffrepo.CityZoneDTO{},
		&tariffrepo.ZoneDTO{},
		&tariffrepo.GuaranteeDTO{},
		&tariffrepo.MarginConfigDTO{},
		&tariffrepo.FeeLineDTO{},
		&tariffrepo.BonusDTO{},
	)
}

// readOnlyTracker is handed to repositories constructed outside a unit of
// work: queries never commit aggregates, so tracking is a no-op.
type readOnlyTracker struct{}

func (readOnlyTracker) TrackAggregate(kernel.UUID, any) {}

func (c *CompositionRoot) orderReader() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(c.gormDB, readOnlyTracker{})
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() (commands.AcceptOrderCommandHandler, error) {
	var f commands.AcceptUoWFactory = FuncAcceptUoWFactory(func() commands.AcceptUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptOrderCommandHandler(f, c.acceptance, c.logger)
}

func (c *CompositionRoot) CreateGroupOrdersCommandHandler() (commands.GroupOrdersCommandHandler, error) {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewGroupOrdersCommandHandler(f, c.planner, c.notifier, c.logger)
}

func (c *CompositionRoot) CreatePromoteScheduledOrdersCommandHandler() (commands.PromoteScheduledOrdersCommandHandler, error) {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPromoteScheduledOrdersCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderByClientCommandHandler() (commands.CancelOrderByClientCommandHandler, error) {
	return commands.NewCancelOrderByClientCommandHandler(
		c.cancelUoWFactory(), c.cancellation, c.recordUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateCancelOrderByMerchantCommandHandler() (commands.CancelOrderByMerchantCommandHandler, error) {
	return commands.NewCancelOrderByMerchantCommandHandler(
		c.cancelUoWFactory(), c.tariffs, c.cancellation, c.remuneration,
		c.recordUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateCancelOrderByAdminCommandHandler() (commands.CancelOrderByAdminCommandHandler, error) {
	return commands.NewCancelOrderByAdminCommandHandler(
		c.cancelUoWFactory(), c.tariffs, c.cancellation, c.remuneration,
		c.recordUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateCalculateRemunerationQueryHandler() (queries.CalculateRemunerationQueryHandler, error) {
	return queries.NewCalculateRemunerationQueryHandler(c.orderReader(), c.tariffs, c.remuneration)
}

func (c *CompositionRoot) CreateCalculateFeesQueryHandler() (queries.CalculateFeesQueryHandler, error) {
	return queries.NewCalculateFeesQueryHandler(c.orderReader(), c.tariffs, c.config.FloorFee, c.logger)
}

func (c *CompositionRoot) CreateGetCouriersQueryHandler() queries.GetCouriersQueryHandler {
	return queries.NewGetCouriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCancellationMassQueryHandler() queries.GetCancellationMassQueryHandler {
	return queries.NewGetCancellationMassQueryHandler(c.gormDB)
}

// CreateHTTPServer assembles the REST server over the full handler set.
func (c *CompositionRoot) CreateHTTPServer() (*http.Server, error) {
	accept, err := c.CreateAcceptOrderCommandHandler()
	if err != nil {
		return nil, err
	}
	group, err := c.CreateGroupOrdersCommandHandler()
	if err != nil {
		return nil, err
	}
	cancelByClient, err := c.CreateCancelOrderByClientCommandHandler()
	if err != nil {
		return nil, err
	}
	cancelByMerchant, err := c.CreateCancelOrderByMerchantCommandHandler()
	if err != nil {
		return nil, err
	}
	cancelByAdmin, err := c.CreateCancelOrderByAdminCommandHandler()
	if err != nil {
		return nil, err
	}
	remuneration, err := c.CreateCalculateRemunerationQueryHandler()
	if err != nil {
		return nil, err
	}
	fees, err := c.CreateCalculateFeesQueryHandler()
	if err != nil {
		return nil, err
	}

	handlers := http.Handlers{
		AcceptOrder:      accept,
		GroupOrders:      group,
		CancelByClient:   cancelByClient,
		CancelByMerchant: cancelByMerchant,
		CancelByAdmin:    cancelByAdmin,
		Remuneration:     remuneration,
		Fees:             fees,
		Couriers:         c.CreateGetCouriersQueryHandler(),
		ActiveOrders:     c.CreateGetActiveOrdersQueryHandler(),
		CancellationMass: c.CreateGetCancellationMassQueryHandler(),
	}

	return http.NewServer(handlers, http.GroupingDefaults{
		Lookback: c.config.GroupingLookback,
		Limit:    c.config.GroupingLimit,
	}), nil
}

// CreateJobManager assembles the background job set.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	promote, err := c.CreatePromoteScheduledOrdersCommandHandler()
	if err != nil {
		return nil, err
	}
	group, err := c.CreateGroupOrdersCommandHandler()
	if err != nil {
		return nil, err
	}

	groupingJob := jobs.NewOrderGroupingJob(
		promote,
		group,
		c.config.GroupingSchedule,
		c.config.GroupingLookback,
		c.config.GroupingLimit,
		c.logger,
	)

	return jobs.NewJobManager(groupingJob), nil
}

func (c *CompositionRoot) cancelUoWFactory() commands.CancelUoWFactory {
	return FuncCancelUoWFactory(func() commands.CancelUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) recordUoWFactory() commands.RecordUoWFactory {
	return FuncRecordUoWFactory(func() commands.RecordUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncAcceptUoWFactory func() commands.AcceptUoW

func (f FuncAcceptUoWFactory) Create() commands.AcceptUoW {
	return f()
}

type FuncCancelUoWFactory func() commands.CancelUoW

func (f FuncCancelUoWFactory) Create() commands.CancelUoW {
	return f()
}

type FuncRecordUoWFactory func() commands.RecordUoW

func (f FuncRecordUoWFactory) Create() commands.RecordUoW {
	return f()
}
