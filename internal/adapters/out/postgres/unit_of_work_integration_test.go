package postgres_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	postgres_adapter "shopfloor/internal/adapters/out/postgres"
	"shopfloor/internal/adapters/out/postgres/locationrepo"
	"shopfloor/internal/adapters/out/postgres/machinerepo"
	"shopfloor/internal/adapters/out/postgres/orderrepo"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/location"
	"shopfloor/internal/core/domain/model/machine"
	"shopfloor/internal/core/domain/model/order"
	"shopfloor/internal/core/ports"
	"shopfloor/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM-based unit of work and
// all three repositories against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory

	orderSeq int
}

// SetupSuite starts the PostgreSQL container, connects, and migrates the
// schema.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ProgressDTO{},
		&locationrepo.LocationDTO{},
		&machinerepo.MachineDTO{},
		&machinerepo.AssignmentDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest truncates all tables to prevent test interference.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE orders, order_progress, locations, machines, machine_assignments").Error
	suite.Require().NoError(err)
}

// TearDownSuite terminates the PostgreSQL container.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newLocation(name string, usedOrder int) *location.Location {
	loc, err := location.NewLocation(
		kernel.NewUUID(), name, usedOrder, usedOrder == 1, false, decimal.NewFromInt(1), false)
	suite.Require().NoError(err)
	return loc
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder(locs ...*location.Location) *order.Order {
	suite.orderSeq++
	ids := make([]kernel.UUID, 0, len(locs))
	for _, loc := range locs {
		ids = append(ids, loc.ID())
	}
	o, err := order.NewOrder(
		kernel.NewUUID(),
		fmt.Sprintf("ORD-%04d", suite.orderSeq),
		100,
		time.Now().Add(72*time.Hour),
		ids,
		time.Now(),
	)
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "repeated begin should be a no-op")

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().Error(err, "commit without active transaction should fail")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "rollback without active transaction should fail")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderRepository_RoundTrip() {
	ctx := context.Background()
	uow := suite.factory.Create()

	cutting := suite.newLocation("Cutting", 1)
	sewing := suite.newLocation("Sewing", 2)
	testOrder := suite.newOrder(cutting, sewing)
	suite.Require().NoError(testOrder.SetQueuePosition(1))
	suite.Require().NoError(testOrder.EnqueueAt(cutting, 1))

	err := uow.Begin(ctx)
	suite.Require().NoError(err)
	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)
	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	retrieved, err := suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.Number(), retrieved.Number())
	suite.Equal(1, retrieved.Version())
	suite.Len(retrieved.Progress(), 2)
	suite.Equal(order.InQueue, retrieved.StatusAt(cutting.ID()))
	suite.Equal(order.NotStarted, retrieved.StatusAt(sewing.ID()))
	suite.Require().NotNil(retrieved.QueuePosition())
	suite.Equal(1, *retrieved.QueuePosition())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderRepository_DuplicateNumber() {
	ctx := context.Background()
	repo := suite.factory.Create().OrderRepository()

	cutting := suite.newLocation("Cutting", 1)
	first := suite.newOrder(cutting)
	suite.Require().NoError(repo.Add(ctx, first))

	duplicate, err := order.NewOrder(
		kernel.NewUUID(), first.Number(), 10, time.Now(), []kernel.UUID{cutting.ID()}, time.Now())
	suite.Require().NoError(err)

	err = repo.Add(ctx, duplicate)
	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderRepository_OptimisticConcurrency() {
	ctx := context.Background()

	cutting := suite.newLocation("Cutting", 1)
	testOrder := suite.newOrder(cutting)
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, testOrder))

	// Two readers load the same version.
	first, err := suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	second, err := suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	first.MarkRush(time.Now())
	suite.Require().NoError(suite.factory.Create().OrderRepository().Update(ctx, first))

	second.MarkRush(time.Now())
	err = suite.factory.Create().OrderRepository().Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrConcurrencyConflict)

	// The winner's write bumped the stored version.
	reloaded, err := suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(2, reloaded.Version())
	suite.True(reloaded.IsRush())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderRepository_QueueQueries() {
	ctx := context.Background()
	repo := suite.factory.Create().OrderRepository()

	cutting := suite.newLocation("Cutting", 1)
	sewing := suite.newLocation("Sewing", 2)

	queuedA := suite.newOrder(cutting, sewing)
	suite.Require().NoError(queuedA.SetQueuePosition(1))
	suite.Require().NoError(queuedA.EnqueueAt(cutting, 1))

	queuedB := suite.newOrder(cutting, sewing)
	suite.Require().NoError(queuedB.SetQueuePosition(2))
	suite.Require().NoError(queuedB.EnqueueAt(cutting, 2))

	idle := suite.newOrder(cutting, sewing)

	suite.Require().NoError(repo.Add(ctx, queuedA))
	suite.Require().NoError(repo.Add(ctx, queuedB))
	suite.Require().NoError(repo.Add(ctx, idle))

	queued, err := repo.GetQueuedAtLocation(ctx, cutting.ID())
	suite.Require().NoError(err)
	suite.Len(queued, 2)

	maxAtLocation, err := repo.MaxQueuePositionAtLocation(ctx, cutting.ID())
	suite.Require().NoError(err)
	suite.Equal(2, maxAtLocation)

	maxAtEmpty, err := repo.MaxQueuePositionAtLocation(ctx, sewing.ID())
	suite.Require().NoError(err)
	suite.Equal(0, maxAtEmpty)

	maxGlobal, err := repo.MaxGlobalQueuePosition(ctx)
	suite.Require().NoError(err)
	suite.Equal(2, maxGlobal)

	unfinished, err := repo.GetAllUnfinished(ctx)
	suite.Require().NoError(err)
	suite.Len(unfinished, 3)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderRepository_ConcurrentAdmissionsGetDistinctPositions() {
	ctx := context.Background()

	cutting := suite.newLocation("Cutting", 1)
	first := suite.newOrder(cutting)
	suite.Require().NoError(first.SetQueuePosition(1))
	second := suite.newOrder(cutting)
	suite.Require().NoError(second.SetQueuePosition(2))

	setup := suite.factory.Create().OrderRepository()
	suite.Require().NoError(setup.Add(ctx, first))
	suite.Require().NoError(setup.Add(ctx, second))

	// Read-compute-write admission: the tail read takes the location's
	// queue lock, so the second transaction waits and sees the first one's
	// committed row instead of the same tail.
	admit := func(orderID kernel.UUID) error {
		uow := suite.factory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}
		defer func() { _ = uow.Rollback(ctx) }()

		repo := uow.OrderRepository()
		testOrder, err := repo.Get(ctx, orderID)
		if err != nil {
			return err
		}
		tail, err := repo.MaxQueuePositionAtLocation(ctx, cutting.ID())
		if err != nil {
			return err
		}
		if err := testOrder.EnqueueAt(cutting, tail+1); err != nil {
			return err
		}
		if err := repo.Update(ctx, testOrder); err != nil {
			return err
		}
		return uow.Commit(ctx)
	}

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for _, id := range []kernel.UUID{first.ID(), second.ID()} {
		wg.Add(1)
		go func(id kernel.UUID) {
			defer wg.Done()
			results <- admit(id)
		}(id)
	}
	wg.Wait()
	close(results)
	for err := range results {
		suite.Require().NoError(err)
	}

	positions := make(map[int]bool, 2)
	for _, id := range []kernel.UUID{first.ID(), second.ID()} {
		reloaded, err := suite.factory.Create().OrderRepository().Get(ctx, id)
		suite.Require().NoError(err)
		progress, err := reloaded.ProgressAt(cutting.ID())
		suite.Require().NoError(err)
		suite.Require().NotNil(progress.QueuePosition())
		positions[*progress.QueuePosition()] = true
	}
	suite.Equal(map[int]bool{1: true, 2: true}, positions,
		"concurrent admissions must land on distinct tail positions")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderRepository_FinishedOrdersExcluded() {
	ctx := context.Background()
	repo := suite.factory.Create().OrderRepository()

	cutting := suite.newLocation("Cutting", 1)
	testOrder := suite.newOrder(cutting)
	suite.Require().NoError(testOrder.SetQueuePosition(1))
	suite.Require().NoError(testOrder.EnqueueAt(cutting, 1))
	suite.Require().NoError(testOrder.StartAt(cutting, time.Now()))
	suite.Require().NoError(testOrder.FinishAt(cutting, 100, time.Now()))
	suite.Require().True(testOrder.IsFinished())

	suite.Require().NoError(repo.Add(ctx, testOrder))

	unfinished, err := repo.GetAllUnfinished(ctx)
	suite.Require().NoError(err)
	suite.Empty(unfinished)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_Rollback() {
	ctx := context.Background()
	uow := suite.factory.Create()

	cutting := suite.newLocation("Cutting", 1)
	testOrder := suite.newOrder(cutting)

	err := uow.Begin(ctx)
	suite.Require().NoError(err)
	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	_, err = uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err, "uncommitted write should be visible inside the transaction")

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	_, err = suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestLocationRepository() {
	ctx := context.Background()
	repo := suite.factory.Create().LocationRepository()

	cutting := suite.newLocation("Cutting", 1)
	sewing := suite.newLocation("Sewing", 2)
	suite.Require().NoError(repo.Add(ctx, cutting))
	suite.Require().NoError(repo.Add(ctx, sewing))

	retrieved, err := repo.Get(ctx, cutting.ID())
	suite.Require().NoError(err)
	suite.Equal("Cutting", retrieved.Name())
	suite.True(retrieved.IsPrimary())
	suite.True(retrieved.CountMultiplier().Equal(decimal.NewFromInt(1)))

	all, err := repo.GetAll(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(all, 2)
	suite.Equal("Cutting", all[0].Name(), "locations sort by workflow precedence")

	both, err := repo.GetByIDs(ctx, []kernel.UUID{cutting.ID(), sewing.ID()})
	suite.Require().NoError(err)
	suite.Len(both, 2)

	_, err = repo.GetByIDs(ctx, []kernel.UUID{cutting.ID(), kernel.NewUUID()})
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestMachineRepository_AssignmentUpsert() {
	ctx := context.Background()
	repo := suite.factory.Create().MachineRepository()

	cutting := suite.newLocation("Cutting", 1)
	testOrder := suite.newOrder(cutting)

	m, err := machine.NewMachine(kernel.NewUUID(), cutting.ID(), "CUT-01")
	suite.Require().NoError(err)
	suite.Require().NoError(repo.Add(ctx, m))

	atLocation, err := repo.GetByLocation(ctx, cutting.ID())
	suite.Require().NoError(err)
	suite.Require().Len(atLocation, 1)
	suite.Equal("CUT-01", atLocation[0].Code())

	assignment, err := machine.NewAssignment(testOrder.ID(), cutting.ID(), m.ID(), 40)
	suite.Require().NoError(err)
	suite.Require().NoError(repo.SaveAssignment(ctx, assignment))

	suite.Require().NoError(assignment.SetQuantity(60))
	suite.Require().NoError(repo.SaveAssignment(ctx, assignment))

	retrieved, err := repo.GetAssignment(ctx, testOrder.ID(), cutting.ID(), m.ID())
	suite.Require().NoError(err)
	suite.Equal(60, retrieved.Quantity(), "second save overwrites the planned quantity")

	forOrder, err := repo.GetAssignmentsForOrder(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Len(forOrder, 1)

	_, err = repo.GetAssignment(ctx, testOrder.ID(), cutting.ID(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
