package commands_test

import (
	"context"

	"shopfloor/internal/core/application/usecases/commands"
	"shopfloor/internal/core/domain/model/audit"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/location"
	"shopfloor/internal/core/domain/model/machine"
	"shopfloor/internal/core/domain/model/order"
	"shopfloor/internal/core/domain/services"
	"shopfloor/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetQueuedAtLocation(
	ctx context.Context, locationID kernel.UUID,
) ([]*order.Order, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) MaxQueuePositionAtLocation(
	ctx context.Context, locationID kernel.UUID,
) (int, error) {
	args := m.Called(ctx, locationID)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepository) MaxGlobalQueuePosition(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepository) GetAllUnfinished(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockLocationRepository struct{ mock.Mock }

func (m *MockLocationRepository) Add(ctx context.Context, loc *location.Location) error {
	args := m.Called(ctx, loc)
	return args.Error(0)
}

func (m *MockLocationRepository) Get(ctx context.Context, id kernel.UUID) (*location.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*location.Location), args.Error(1)
}

func (m *MockLocationRepository) GetByIDs(
	ctx context.Context, ids []kernel.UUID,
) ([]*location.Location, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*location.Location), args.Error(1)
}

func (m *MockLocationRepository) GetAll(ctx context.Context) ([]*location.Location, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*location.Location), args.Error(1)
}

type MockMachineRepository struct{ mock.Mock }

func (m *MockMachineRepository) Add(ctx context.Context, mach *machine.Machine) error {
	args := m.Called(ctx, mach)
	return args.Error(0)
}

func (m *MockMachineRepository) Get(ctx context.Context, id kernel.UUID) (*machine.Machine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*machine.Machine), args.Error(1)
}

func (m *MockMachineRepository) GetByLocation(
	ctx context.Context, locationID kernel.UUID,
) ([]*machine.Machine, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*machine.Machine), args.Error(1)
}

func (m *MockMachineRepository) SaveAssignment(ctx context.Context, a *machine.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockMachineRepository) GetAssignment(
	ctx context.Context, orderID, locationID, machineID kernel.UUID,
) (*machine.Assignment, error) {
	args := m.Called(ctx, orderID, locationID, machineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*machine.Assignment), args.Error(1)
}

func (m *MockMachineRepository) GetAssignmentsForOrder(
	ctx context.Context, orderID kernel.UUID,
) ([]*machine.Assignment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*machine.Assignment), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) LocationRepository() ports.LocationRepository {
	args := m.Called()
	return args.Get(0).(ports.LocationRepository)
}

func (m *MockUoW) MachineRepository() ports.MachineRepository {
	args := m.Called()
	return args.Get(0).(ports.MachineRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockMachineUoWFactory struct{ mock.Mock }

func (m *MockMachineUoWFactory) Create() commands.MachineUoW {
	args := m.Called()
	return args.Get(0).(commands.MachineUoW)
}

type MockAuditLog struct{ mock.Mock }

func (m *MockAuditLog) Record(ctx context.Context, entry *audit.Entry) {
	m.Called(ctx, entry)
}

func (m *MockAuditLog) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*audit.Entry, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*audit.Entry), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(
	ctx context.Context, orderID kernel.UUID, locationID *kernel.UUID, eventType string,
) {
	m.Called(ctx, orderID, locationID, eventType)
}

type MockQueueBoardCache struct{ mock.Mock }

func (m *MockQueueBoardCache) Get(
	ctx context.Context, locationID kernel.UUID,
) ([]services.QueueEntry, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.QueueEntry), args.Error(1)
}

func (m *MockQueueBoardCache) Set(
	ctx context.Context, locationID kernel.UUID, entries []services.QueueEntry,
) error {
	args := m.Called(ctx, locationID, entries)
	return args.Error(0)
}

func (m *MockQueueBoardCache) Invalidate(ctx context.Context, locationID kernel.UUID) error {
	args := m.Called(ctx, locationID)
	return args.Error(0)
}
