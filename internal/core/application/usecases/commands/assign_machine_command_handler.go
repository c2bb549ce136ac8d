package commands

import (
	"context"
	"fmt"

	"shopfloor/internal/core/domain/model/machine"
	"shopfloor/internal/core/ports"
	"shopfloor/internal/pkg/errs"
)

// AssignMachineCommandHandler handles machine assignment planning.
// The machine must belong to the given location and the order must pass
// through it; the assignment upserts on its (order, location, machine)
// triple.
type AssignMachineCommandHandler struct {
	uowFactory MachineUoWFactory
	effects    sideEffects
}

// NewAssignMachineCommandHandler creates a handler for machine assignment.
func NewAssignMachineCommandHandler(
	uowFactory MachineUoWFactory,
	auditLog ports.AuditLog,
	notifier ports.Notifier,
) AssignMachineCommandHandler {
	return AssignMachineCommandHandler{
		uowFactory: uowFactory,
		effects:    newSideEffects(auditLog, notifier, nil),
	}
}

// Handle processes the assignment.
func (h *AssignMachineCommandHandler) Handle(ctx context.Context, cmd AssignMachineCommand) error {
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
	m, err := machineRepo.Get(ctx, cmd.MachineID())
	if err != nil {
		return err
	}
	if !m.LocationID().IsEqual(cmd.LocationID()) {
		return errs.NewValueIsInvalidErrorWithCause("machineId",
			fmt.Errorf("machine %s does not belong to location %s", m.Code(), cmd.LocationID()))
	}

	ord, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if _, err = ord.ProgressAt(cmd.LocationID()); err != nil {
		return err
	}

	assignment, err := machine.NewAssignment(cmd.OrderID(), cmd.LocationID(), cmd.MachineID(), cmd.Quantity())
	if err != nil {
		return err
	}

	if err = machineRepo.SaveAssignment(ctx, assignment); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	locID := cmd.LocationID()
	h.effects.record(ctx, cmd.OrderID(), &locID, nil, "assign_machine",
		fmt.Sprintf("machine %s assigned quantity %d", m.Code(), cmd.Quantity()), "")

	return nil
}
