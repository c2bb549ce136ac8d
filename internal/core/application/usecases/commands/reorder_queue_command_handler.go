package commands

import (
	"context"
	"fmt"

	"shopfloor/internal/core/domain/model/order"
	"shopfloor/internal/core/domain/services"
	"shopfloor/internal/core/ports"
)

// ReorderQueueCommandHandler handles moving a queued order within a
// location's non-rush queue.
//
// The location's queued aggregates load inside one transaction (the
// repository locks them for update), the queue manager computes the full
// renumbering, and every changed row persists before commit. Positions
// therefore stay contiguous 1..K under concurrent reorders.
type ReorderQueueCommandHandler struct {
	uowFactory OrderUoWFactory
	manager    services.QueueManager
	effects    sideEffects
}

// NewReorderQueueCommandHandler creates a handler for queue reordering.
func NewReorderQueueCommandHandler(
	uowFactory OrderUoWFactory,
	auditLog ports.AuditLog,
	notifier ports.Notifier,
	cache ports.QueueBoardCache,
) ReorderQueueCommandHandler {
	return ReorderQueueCommandHandler{
		uowFactory: uowFactory,
		manager:    services.NewQueueManager(),
		effects:    newSideEffects(auditLog, notifier, cache),
	}
}

// Handle processes the reorder command. Rush orders cannot be moved; the
// target must be queued at the location.
func (h *ReorderQueueCommandHandler) Handle(ctx context.Context, cmd ReorderQueueCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	queued, err := orderRepo.GetQueuedAtLocation(ctx, cmd.LocationID())
	if err != nil {
		return err
	}

	entries := make([]services.QueueEntry, 0, len(queued))
	byID := make(map[string]*order.Order, len(queued))
	for _, ord := range queued {
		progress, progressErr := ord.ProgressAt(cmd.LocationID())
		if progressErr != nil {
			return progressErr
		}
		entries = append(entries, services.QueueEntry{
			OrderID:       ord.ID(),
			OrderNumber:   ord.Number(),
			Rush:          ord.IsRush(),
			RushSetAt:     ord.RushSetAt(),
			QueuePosition: progress.QueuePosition(),
			CreatedAt:     ord.CreatedAt(),
		})
		byID[ord.ID().String()] = ord
	}

	placements, err := h.manager.Reorder(entries, cmd.OrderID(), cmd.NewPosition())
	if err != nil {
		return err
	}

	for _, placement := range placements {
		ord := byID[placement.OrderID.String()]
		progress, progressErr := ord.ProgressAt(cmd.LocationID())
		if progressErr != nil {
			return progressErr
		}
		if progress.QueuePosition() != nil && *progress.QueuePosition() == placement.Position {
			continue
		}
		if err = ord.PlaceInQueueAt(cmd.LocationID(), placement.Position); err != nil {
			return err
		}
		if err = orderRepo.Update(ctx, ord); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	locID := cmd.LocationID()
	h.effects.record(ctx, cmd.OrderID(), &locID, nil, "reorder",
		fmt.Sprintf("moved to queue position %d", cmd.NewPosition()), "")
	h.effects.invalidate(ctx, locID)

	return nil
}
