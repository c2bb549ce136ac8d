package commands_test

import (
	"testing"
	"time"

	"shopfloor/internal/core/application/usecases/commands"
	"shopfloor/internal/core/domain/model/location"
	"shopfloor/internal/core/domain/model/order"
	"shopfloor/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFinishLocationCommandHandler_Handle_ClampsQuantity(t *testing.T) {
	ctx := t.Context()

	locA := newTestLocation(t, "Cutting", 1, false)
	selected := []*location.Location{locA}
	ord := newTestOrder(t, "ORD-300", 100, locA)
	require.NoError(t, ord.StartAt(locA, time.Now()))

	cmd, err := commands.NewFinishLocationCommand(ord.ID(), locA.ID(), 150)
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
	orderRepo.On("Update", ctx, ord).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	auditLog := new(MockAuditLog)
	auditLog.On("Record", ctx, mock.AnythingOfType("*audit.Entry")).Twice()
	notifier := new(MockNotifier)
	notifier.On("Notify", ctx, ord.ID(), mock.Anything, "order.location.finished").Once()
	notifier.On("Notify", ctx, ord.ID(), mock.Anything, "order.finished").Once()
	cache := new(MockQueueBoardCache)
	cache.On("Invalidate", ctx, locA.ID()).Return(nil).Once()

	handler := commands.NewFinishLocationCommandHandler(factory, auditLog, notifier, cache)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Done, ord.StatusAt(locA.ID()))
	progress, _ := ord.ProgressAt(locA.ID())
	assert.Equal(t, 100, progress.CompletedQuantity(), "150 clamps to the effective max")
	assert.True(t, ord.IsFinished())
	notifier.AssertExpectations(t)
}

func TestFinishLocationCommandHandler_Handle_ConcurrencyConflict(t *testing.T) {
	ctx := t.Context()

	locA := newTestLocation(t, "Cutting", 1, false)
	selected := []*location.Location{locA}
	ord := newTestOrder(t, "ORD-301", 100, locA)
	require.NoError(t, ord.StartAt(locA, time.Now()))

	cmd, err := commands.NewFinishLocationCommand(ord.ID(), locA.ID(), 100)
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
	orderRepo.On("Update", ctx, ord).
		Return(errs.NewConcurrencyConflictError("orderId", ord.ID().String())).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewFinishLocationCommandHandler(
		factory, new(MockAuditLog), new(MockNotifier), new(MockQueueBoardCache))
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConcurrencyConflict)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestFinishLocationCommandHandler_Handle_AlreadyDone(t *testing.T) {
	ctx := t.Context()

	// A loser that reloads after the winner committed sees a Done row.
	locA := newTestLocation(t, "Cutting", 1, false)
	selected := []*location.Location{locA}
	ord := newTestOrder(t, "ORD-302", 100, locA)
	require.NoError(t, ord.StartAt(locA, time.Now()))
	require.NoError(t, ord.FinishAt(locA, 100, time.Now()))

	cmd, err := commands.NewFinishLocationCommand(ord.ID(), locA.ID(), 100)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	locationRepo := new(MockLocationRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once()
	uow.On("LocationRepository").Return(locationRepo).Once()
	locationRepo.On("GetByIDs", ctx, ord.SelectedLocationIDs()).Return(selected, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewFinishLocationCommandHandler(
		factory, new(MockAuditLog), new(MockNotifier), new(MockQueueBoardCache))
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidTransition)
}
