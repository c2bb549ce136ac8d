package cmd

import (
	"shopfloor/internal/adapters/out/kafka"
	"shopfloor/internal/adapters/out/postgres"
	"shopfloor/internal/adapters/out/postgres/auditrepo"
	"shopfloor/internal/adapters/out/postgres/locationrepo"
	"shopfloor/internal/adapters/out/rediscache"
	"shopfloor/internal/core/application/usecases/commands"
	"shopfloor/internal/core/application/usecases/queries"
	"shopfloor/internal/core/ports"
	"shopfloor/internal/jobs"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompositionRoot wires the adapters into the application use cases. All
// handlers share one unit-of-work factory, one audit log, one notifier, and
// one queue-board cache.
type CompositionRoot struct {
	gormDB     *gorm.DB
	log        *zap.Logger
	uowFactory *postgres.GormUnitOfWorkFactory
	auditLog   ports.AuditLog
	notifier   *kafka.Notifier
	cache      ports.QueueBoardCache
}

// NewCompositionRoot creates the composition root from the shared
// infrastructure handles.
func NewCompositionRoot(
	cfg Config, gormDB *gorm.DB, redisClient *redis.Client, log *zap.Logger,
) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		log:        log,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		auditLog:   auditrepo.NewGormAuditLog(gormDB, log),
		notifier:   kafka.NewNotifier(cfg.KafkaBrokers, cfg.KafkaEventsTopic, log),
		cache:      rediscache.NewRedisQueueBoardCache(redisClient, cfg.QueueBoardTTL),
	}
}

// Close releases the adapters the root owns.
func (c *CompositionRoot) Close() error {
	return c.notifier.Close()
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uowFactoryForCommands() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) machineUoWFactory() commands.MachineUoWFactory {
	return FuncMachineUoWFactory(func() commands.MachineUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uowFactoryForCommands(), c.auditLog, c.notifier, c.cache)
}

func (c *CompositionRoot) CreateStartLocationCommandHandler() commands.StartLocationCommandHandler {
	return commands.NewStartLocationCommandHandler(c.uowFactoryForCommands(), c.auditLog, c.notifier, c.cache)
}

func (c *CompositionRoot) CreatePauseLocationCommandHandler() commands.PauseLocationCommandHandler {
	return commands.NewPauseLocationCommandHandler(c.uowFactoryForCommands(), c.auditLog, c.notifier, c.cache)
}

func (c *CompositionRoot) CreateFinishLocationCommandHandler() commands.FinishLocationCommandHandler {
	return commands.NewFinishLocationCommandHandler(c.uowFactoryForCommands(), c.auditLog, c.notifier, c.cache)
}

func (c *CompositionRoot) CreateUpdateLocationQuantityCommandHandler() commands.UpdateLocationQuantityCommandHandler {
	return commands.NewUpdateLocationQuantityCommandHandler(
		c.uowFactoryForCommands(), c.auditLog, c.notifier, c.cache)
}

func (c *CompositionRoot) CreateReorderQueueCommandHandler() commands.ReorderQueueCommandHandler {
	return commands.NewReorderQueueCommandHandler(c.orderUoWFactory(), c.auditLog, c.notifier, c.cache)
}

func (c *CompositionRoot) CreateSetQueuePositionCommandHandler() commands.SetQueuePositionCommandHandler {
	return commands.NewSetQueuePositionCommandHandler(c.uowFactoryForCommands(), c.auditLog, c.notifier, c.cache)
}

func (c *CompositionRoot) CreateMarkRushCommandHandler() commands.MarkRushCommandHandler {
	return commands.NewMarkRushCommandHandler(c.orderUoWFactory(), c.auditLog, c.notifier, c.cache)
}

func (c *CompositionRoot) CreateShipOrderCommandHandler() commands.ShipOrderCommandHandler {
	return commands.NewShipOrderCommandHandler(c.orderUoWFactory(), c.auditLog, c.notifier)
}

func (c *CompositionRoot) CreateRequestHelpCommandHandler() commands.RequestHelpCommandHandler {
	return commands.NewRequestHelpCommandHandler(c.orderUoWFactory(), c.auditLog, c.notifier)
}

func (c *CompositionRoot) CreateAssignMachineCommandHandler() commands.AssignMachineCommandHandler {
	return commands.NewAssignMachineCommandHandler(c.machineUoWFactory(), c.auditLog, c.notifier)
}

func (c *CompositionRoot) CreateUpdateAssignmentQuantityCommandHandler() commands.UpdateAssignmentQuantityCommandHandler {
	return commands.NewUpdateAssignmentQuantityCommandHandler(c.machineUoWFactory(), c.auditLog, c.notifier)
}

func (c *CompositionRoot) CreateGetLocationQueueQueryHandler() queries.GetLocationQueueQueryHandler {
	return queries.NewGetLocationQueueQueryHandler(c.gormDB, c.cache)
}

func (c *CompositionRoot) CreateGetEligibilityQueryHandler() queries.GetEligibilityQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewGetEligibilityQueryHandler(uow.OrderRepository(), uow.LocationRepository())
}

func (c *CompositionRoot) CreateGetUpcomingOrdersQueryHandler() queries.GetUpcomingOrdersQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewGetUpcomingOrdersQueryHandler(uow.OrderRepository(), uow.LocationRepository())
}

// CreateJobManager wires the background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		locationrepo.NewGormLocationRepository(c.gormDB),
		c.CreateGetLocationQueueQueryHandler(),
		c.log,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncMachineUoWFactory func() commands.MachineUoW

func (f FuncMachineUoWFactory) Create() commands.MachineUoW {
	return f()
}
