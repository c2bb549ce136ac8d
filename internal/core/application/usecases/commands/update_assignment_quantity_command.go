package commands

import (
	"errors"
	"fmt"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/guard"
)

var ErrUpdateAssignmentQuantityCommandIsNotConstructed = errors.New(
	"UpdateAssignmentQuantityCommand must be created via NewUpdateAssignmentQuantityCommand constructor",
)

// UpdateAssignmentQuantityCommand represents changing the planned quantity
// of an existing machine assignment.
type UpdateAssignmentQuantityCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	locationID kernel.UUID
	machineID  kernel.UUID
	quantity   int

	guard guard.ConstructorGuard
}

// NewUpdateAssignmentQuantityCommand creates a command to change an
// assignment's planned quantity.
func NewUpdateAssignmentQuantityCommand(
	orderID, locationID, machineID kernel.UUID, quantity int,
) (UpdateAssignmentQuantityCommand, error) {
	cmd := UpdateAssignmentQuantityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setLocationID(locationID),
		cmd.setMachineID(machineID),
		cmd.setQuantity(quantity),
	); err != nil {
		return UpdateAssignmentQuantityCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateAssignmentQuantityCommand) Validate() error {
	return c.guard.Validate(ErrUpdateAssignmentQuantityCommandIsNotConstructed)
}

// OrderID returns the order of the assignment.
func (c UpdateAssignmentQuantityCommand) OrderID() kernel.UUID {
	return c.orderID
}

// LocationID returns the location of the assignment.
func (c UpdateAssignmentQuantityCommand) LocationID() kernel.UUID {
	return c.locationID
}

// MachineID returns the machine of the assignment.
func (c UpdateAssignmentQuantityCommand) MachineID() kernel.UUID {
	return c.machineID
}

// Quantity returns the new planned quantity.
func (c UpdateAssignmentQuantityCommand) Quantity() int {
	return c.quantity
}

func (c *UpdateAssignmentQuantityCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateAssignmentQuantityCommand) setLocationID(locationID kernel.UUID) error {
	if err := locationID.Validate(); err != nil {
		return err
	}

	c.locationID = locationID
	return nil
}

func (c *UpdateAssignmentQuantityCommand) setMachineID(machineID kernel.UUID) error {
	if err := machineID.Validate(); err != nil {
		return err
	}

	c.machineID = machineID
	return nil
}

func (c *UpdateAssignmentQuantityCommand) setQuantity(quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: got %d", ErrAssignedQuantityIsInvalid, quantity)
	}

	c.quantity = quantity
	return nil
}
