package commands_test

import (
	"testing"

	"shopfloor/internal/core/application/usecases/commands"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/machine"
	"shopfloor/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAssignMachineCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	loc := newTestLocation(t, "Sewing", 2, false)
	ord := newTestOrder(t, "ORD-650", 100, loc)

	m, err := machine.NewMachine(kernel.NewUUID(), loc.ID(), "SEW-01")
	require.NoError(t, err)

	cmd, err := commands.NewAssignMachineCommand(ord.ID(), loc.ID(), m.ID(), 60)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	machineRepo := new(MockMachineRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("MachineRepository").Return(machineRepo).Once(),
		machineRepo.On("Get", ctx, m.ID()).Return(m, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
		machineRepo.On("SaveAssignment", ctx, mock.MatchedBy(func(a *machine.Assignment) bool {
			return a.OrderID().IsEqual(ord.ID()) &&
				a.MachineID().IsEqual(m.ID()) &&
				a.Quantity() == 60
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockMachineUoWFactory)
	factory.On("Create").Return(uow).Once()

	auditLog := new(MockAuditLog)
	auditLog.On("Record", ctx, mock.AnythingOfType("*audit.Entry")).Once()

	handler := commands.NewAssignMachineCommandHandler(factory, auditLog, new(MockNotifier))
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	uow.AssertExpectations(t)
	machineRepo.AssertExpectations(t)
}

func TestAssignMachineCommandHandler_Handle_MachineAtOtherLocation(t *testing.T) {
	ctx := t.Context()

	loc := newTestLocation(t, "Sewing", 2, false)
	other := newTestLocation(t, "Pressing", 3, false)
	ord := newTestOrder(t, "ORD-651", 100, loc)

	m, err := machine.NewMachine(kernel.NewUUID(), other.ID(), "PRS-01")
	require.NoError(t, err)

	cmd, err := commands.NewAssignMachineCommand(ord.ID(), loc.ID(), m.ID(), 60)
	require.NoError(t, err)

	machineRepo := new(MockMachineRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("MachineRepository").Return(machineRepo).Once()
	machineRepo.On("Get", ctx, m.ID()).Return(m, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockMachineUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignMachineCommandHandler(factory, new(MockAuditLog), new(MockNotifier))
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	machineRepo.AssertNotCalled(t, "SaveAssignment", mock.Anything, mock.Anything)
}

func TestAssignMachineCommandHandler_Handle_OrderNotOnRoute(t *testing.T) {
	ctx := t.Context()

	loc := newTestLocation(t, "Sewing", 2, false)
	elsewhere := newTestLocation(t, "Pressing", 3, false)
	ord := newTestOrder(t, "ORD-652", 100, elsewhere)

	m, err := machine.NewMachine(kernel.NewUUID(), loc.ID(), "SEW-02")
	require.NoError(t, err)

	cmd, err := commands.NewAssignMachineCommand(ord.ID(), loc.ID(), m.ID(), 10)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	machineRepo := new(MockMachineRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("MachineRepository").Return(machineRepo).Once()
	machineRepo.On("Get", ctx, m.ID()).Return(m, nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockMachineUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignMachineCommandHandler(factory, new(MockAuditLog), new(MockNotifier))
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	machineRepo.AssertNotCalled(t, "SaveAssignment", mock.Anything, mock.Anything)
}

func TestAssignMachineCommand_Validation(t *testing.T) {
	t.Run("negative quantity", func(t *testing.T) {
		_, err := commands.NewAssignMachineCommand(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), -1)
		require.ErrorIs(t, err, commands.ErrAssignedQuantityIsInvalid)
	})

	t.Run("not constructed", func(t *testing.T) {
		var cmd commands.AssignMachineCommand
		assert.Error(t, cmd.Validate())
	})
}
