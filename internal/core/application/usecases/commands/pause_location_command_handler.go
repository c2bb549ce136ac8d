package commands

import (
	"context"

	"shopfloor/internal/core/ports"
	"shopfloor/internal/pkg/errs"
)

// PauseLocationCommandHandler handles pausing in-progress work. Pausing
// never changes queue state, so no admission pass runs.
type PauseLocationCommandHandler struct {
	uowFactory UoWFactory
	effects    sideEffects
}

// NewPauseLocationCommandHandler creates a handler for pausing location work.
func NewPauseLocationCommandHandler(
	uowFactory UoWFactory,
	auditLog ports.AuditLog,
	notifier ports.Notifier,
	cache ports.QueueBoardCache,
) PauseLocationCommandHandler {
	return PauseLocationCommandHandler{
		uowFactory: uowFactory,
		effects:    newSideEffects(auditLog, notifier, cache),
	}
}

// Handle processes the pause command.
func (h *PauseLocationCommandHandler) Handle(ctx context.Context, cmd PauseLocationCommand) error {
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

	selected, err := uow.LocationRepository().GetByIDs(ctx, ord.SelectedLocationIDs())
	if err != nil {
		return err
	}
	target := findLocation(selected, cmd.LocationID())
	if target == nil {
		return errs.NewObjectNotFoundError("locationId", cmd.LocationID().String())
	}

	if err = ord.PauseAt(target); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	locID := cmd.LocationID()
	h.effects.record(ctx, ord.ID(), &locID, nil, "pause", "work paused", ports.EventLocationPaused)

	return nil
}
