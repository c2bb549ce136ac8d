package commands_test

import (
	"testing"

	"shopfloor/internal/core/application/usecases/commands"
	"shopfloor/internal/core/domain/model/location"
	"shopfloor/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSetQueuePositionCommandHandler_Handle_AdmitsEntryStage(t *testing.T) {
	ctx := t.Context()

	locA := newTestLocation(t, "Cutting", 1, true)
	selected := []*location.Location{locA}
	ord := newTestOrder(t, "ORD-400", 100, locA)

	cmd, err := commands.NewSetQueuePositionCommand(ord.ID(), 1)
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
	notifier.On("Notify", ctx, ord.ID(), mock.Anything, "order.location.queued").Once()
	cache := new(MockQueueBoardCache)
	cache.On("Invalidate", ctx, locA.ID()).Return(nil).Once()

	handler := commands.NewSetQueuePositionCommandHandler(factory, auditLog, notifier, cache)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, ord.QueuePosition())
	assert.Equal(t, 1, *ord.QueuePosition())
	assert.Equal(t, order.InQueue, ord.StatusAt(locA.ID()),
		"global admission unlocks the primary entry stage")
	notifier.AssertExpectations(t)
}

func TestSetQueuePositionCommand_Validation(t *testing.T) {
	t.Run("non-positive position", func(t *testing.T) {
		_, err := commands.NewSetQueuePositionCommand(newTestLocation(t, "X", 1, false).ID(), 0)
		require.ErrorIs(t, err, commands.ErrGlobalPositionIsInvalid)
	})

	t.Run("not constructed", func(t *testing.T) {
		var cmd commands.SetQueuePositionCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrSetQueuePositionCommandIsNotConstructed)
	})
}
