package commands

import (
	"context"
	"fmt"

	"shopfloor/internal/core/ports"
)

// UpdateAssignmentQuantityCommandHandler handles planned quantity changes
// on an existing machine assignment. The (order, location, machine) triple
// must already exist; there is no implicit create.
type UpdateAssignmentQuantityCommandHandler struct {
	uowFactory MachineUoWFactory
	effects    sideEffects
}

// NewUpdateAssignmentQuantityCommandHandler creates a handler for
// assignment quantity changes.
func NewUpdateAssignmentQuantityCommandHandler(
	uowFactory MachineUoWFactory,
	auditLog ports.AuditLog,
	notifier ports.Notifier,
) UpdateAssignmentQuantityCommandHandler {
	return UpdateAssignmentQuantityCommandHandler{
		uowFactory: uowFactory,
		effects:    newSideEffects(auditLog, notifier, nil),
	}
}

// Handle processes the quantity change.
func (h *UpdateAssignmentQuantityCommandHandler) Handle(
	ctx context.Context, cmd UpdateAssignmentQuantityCommand,
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

	machineRepo := uow.MachineRepository()
	assignment, err := machineRepo.GetAssignment(ctx, cmd.OrderID(), cmd.LocationID(), cmd.MachineID())
	if err != nil {
		return err
	}

	if err = assignment.SetQuantity(cmd.Quantity()); err != nil {
		return err
	}

	if err = machineRepo.SaveAssignment(ctx, assignment); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	locID := cmd.LocationID()
	h.effects.record(ctx, cmd.OrderID(), &locID, nil, "update_assignment",
		fmt.Sprintf("assignment quantity set to %d", cmd.Quantity()), "")

	return nil
}
