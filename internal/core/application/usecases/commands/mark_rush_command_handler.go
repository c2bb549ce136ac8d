package commands

import (
	"context"
	"time"

	"shopfloor/internal/core/domain/model/order"
	"shopfloor/internal/core/ports"
)

// MarkRushCommandHandler handles rush flag changes. The rush timestamp is
// set on the first marking and preserved on repeats, so an order's place
// among rush rows never regresses. Every location where the order is
// queued gets its board cache invalidated.
type MarkRushCommandHandler struct {
	uowFactory OrderUoWFactory
	effects    sideEffects
}

// NewMarkRushCommandHandler creates a handler for rush flag changes.
func NewMarkRushCommandHandler(
	uowFactory OrderUoWFactory,
	auditLog ports.AuditLog,
	notifier ports.Notifier,
	cache ports.QueueBoardCache,
) MarkRushCommandHandler {
	return MarkRushCommandHandler{
		uowFactory: uowFactory,
		effects:    newSideEffects(auditLog, notifier, cache),
	}
}

// Handle processes the rush flag change.
func (h *MarkRushCommandHandler) Handle(ctx context.Context, cmd MarkRushCommand) error {
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
	ord, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if cmd.Rush() {
		ord.MarkRush(time.Now())
	} else {
		ord.ClearRush()
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	action := "mark_rush"
	if !cmd.Rush() {
		action = "clear_rush"
	}
	h.effects.record(ctx, ord.ID(), nil, nil, action, "", ports.EventOrderRush)
	for _, progress := range ord.Progress() {
		if progress.Status() == order.InQueue {
			h.effects.invalidate(ctx, progress.LocationID())
		}
	}

	return nil
}
