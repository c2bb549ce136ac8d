package commands

import (
	"context"
	"fmt"

	"shopfloor/internal/core/domain/services"
	"shopfloor/internal/core/ports"
)

// SetQueuePositionCommandHandler handles global queue admission. Setting
// the position unlocks the order's primary entry stages, so auto-admission
// runs in the same transaction.
type SetQueuePositionCommandHandler struct {
	uowFactory UoWFactory
	admission  services.AdmissionService
	effects    sideEffects
}

// NewSetQueuePositionCommandHandler creates a handler for global queue admission.
func NewSetQueuePositionCommandHandler(
	uowFactory UoWFactory,
	auditLog ports.AuditLog,
	notifier ports.Notifier,
	cache ports.QueueBoardCache,
) SetQueuePositionCommandHandler {
	return SetQueuePositionCommandHandler{
		uowFactory: uowFactory,
		admission:  services.NewAdmissionService(),
		effects:    newSideEffects(auditLog, notifier, cache),
	}
}

// Handle processes the admission command.
func (h *SetQueuePositionCommandHandler) Handle(ctx context.Context, cmd SetQueuePositionCommand) error {
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

	if err = ord.SetQueuePosition(cmd.Position()); err != nil {
		return err
	}

	selected, err := uow.LocationRepository().GetByIDs(ctx, ord.SelectedLocationIDs())
	if err != nil {
		return err
	}

	tails, err := queueTails(ctx, orderRepo, selected)
	if err != nil {
		return err
	}
	admitted, err := h.admission.Admit(ord, selected, tails)
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.effects.record(ctx, ord.ID(), nil, nil, "set_queue_position",
		fmt.Sprintf("admitted to global queue at position %d", cmd.Position()), "")
	for _, admittedID := range admitted {
		aID := admittedID
		h.effects.record(ctx, ord.ID(), &aID, nil, "enqueue", "auto-admitted to location queue",
			ports.EventLocationQueued)
		h.effects.invalidate(ctx, aID)
	}

	return nil
}
