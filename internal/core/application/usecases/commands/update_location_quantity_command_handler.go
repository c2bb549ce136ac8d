package commands

import (
	"context"
	"fmt"

	"shopfloor/internal/core/ports"
	"shopfloor/internal/pkg/errs"
)

// UpdateLocationQuantityCommandHandler handles in-flight quantity
// corrections. Out-of-range values are rejected with QuantityOutOfRange,
// never clamped.
type UpdateLocationQuantityCommandHandler struct {
	uowFactory UoWFactory
	effects    sideEffects
}

// NewUpdateLocationQuantityCommandHandler creates a handler for quantity corrections.
func NewUpdateLocationQuantityCommandHandler(
	uowFactory UoWFactory,
	auditLog ports.AuditLog,
	notifier ports.Notifier,
	cache ports.QueueBoardCache,
) UpdateLocationQuantityCommandHandler {
	return UpdateLocationQuantityCommandHandler{
		uowFactory: uowFactory,
		effects:    newSideEffects(auditLog, notifier, cache),
	}
}

// Handle processes the quantity correction.
func (h *UpdateLocationQuantityCommandHandler) Handle(
	ctx context.Context, cmd UpdateLocationQuantityCommand,
) error {
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

	if err = ord.UpdateQuantityAt(target, cmd.CompletedQuantity()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	locID := cmd.LocationID()
	h.effects.record(ctx, ord.ID(), &locID, nil, "update_quantity",
		fmt.Sprintf("completed quantity set to %d", cmd.CompletedQuantity()), "")

	return nil
}
