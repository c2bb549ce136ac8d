package commands_test

import (
	"testing"

	"shopfloor/internal/core/application/usecases/commands"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/location"
	"shopfloor/internal/core/domain/model/order"
	"shopfloor/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStartLocationCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	locA := newTestLocation(t, "Cutting", 1, true)
	locB := newTestLocation(t, "Sewing", 2, false)
	selected := []*location.Location{locA, locB}

	ord := newTestOrder(t, "ORD-200", 100, locA, locB)
	require.NoError(t, ord.SetQueuePosition(1))

	cmd, err := commands.NewStartLocationCommand(ord.ID(), locA.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	locationRepo := new(MockLocationRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once()
	uow.On("LocationRepository").Return(locationRepo).Once()
	locationRepo.On("GetByIDs", ctx, ord.SelectedLocationIDs()).Return(selected, nil).Once()
	orderRepo.On("MaxQueuePositionAtLocation", ctx, locA.ID()).Return(0, nil).Once()
	orderRepo.On("MaxQueuePositionAtLocation", ctx, locB.ID()).Return(0, nil).Once()
	orderRepo.On("Update", ctx, ord).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	auditLog := new(MockAuditLog)
	auditLog.On("Record", ctx, mock.AnythingOfType("*audit.Entry")).Twice()
	notifier := new(MockNotifier)
	notifier.On("Notify", ctx, ord.ID(), mock.AnythingOfType("*kernel.UUID"), "order.location.started").Once()
	notifier.On("Notify", ctx, ord.ID(), mock.AnythingOfType("*kernel.UUID"), "order.location.queued").Once()
	cache := new(MockQueueBoardCache)
	cache.On("Invalidate", ctx, locA.ID()).Return(nil).Once()
	cache.On("Invalidate", ctx, locB.ID()).Return(nil).Once()

	handler := commands.NewStartLocationCommandHandler(factory, auditLog, notifier, cache)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.InProgress, ord.StatusAt(locA.ID()))
	assert.Equal(t, order.InQueue, ord.StatusAt(locB.ID()), "starting unlocks the downstream tier")
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestStartLocationCommandHandler_Handle_Blocked(t *testing.T) {
	ctx := t.Context()

	// No global queue position, primary entry stage: the gate holds even
	// against an explicit start.
	locA := newTestLocation(t, "Cutting", 1, true)
	selected := []*location.Location{locA}
	ord := newTestOrder(t, "ORD-201", 100, locA)

	cmd, err := commands.NewStartLocationCommand(ord.ID(), locA.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	locationRepo := new(MockLocationRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
		uow.On("LocationRepository").Return(locationRepo).Once(),
		locationRepo.On("GetByIDs", ctx, ord.SelectedLocationIDs()).Return(selected, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewStartLocationCommandHandler(
		factory, new(MockAuditLog), new(MockNotifier), new(MockQueueBoardCache))
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrBlocked)
	assert.Equal(t, order.NotStarted, ord.StatusAt(locA.ID()))
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestStartLocationCommandHandler_Handle_UnknownLocation(t *testing.T) {
	ctx := t.Context()

	locA := newTestLocation(t, "Cutting", 1, true)
	ord := newTestOrder(t, "ORD-202", 100, locA)

	cmd, err := commands.NewStartLocationCommand(ord.ID(), kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	locationRepo := new(MockLocationRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once()
	uow.On("LocationRepository").Return(locationRepo).Once()
	locationRepo.On("GetByIDs", ctx, ord.SelectedLocationIDs()).
		Return([]*location.Location{locA}, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewStartLocationCommandHandler(
		factory, new(MockAuditLog), new(MockNotifier), new(MockQueueBoardCache))
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
