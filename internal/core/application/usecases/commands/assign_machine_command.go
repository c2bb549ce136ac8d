package commands

import (
	"errors"
	"fmt"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/guard"
)

var (
	ErrAssignMachineCommandIsNotConstructed = errors.New(
		"AssignMachineCommand must be created via NewAssignMachineCommand constructor",
	)
	ErrAssignedQuantityIsInvalid = errors.New("assigned quantity must not be negative")
)

// AssignMachineCommand represents planning part of an order's quantity
// onto a machine at a location. Assignments are advisory: their quantities
// are not summed against the order's effective quantity.
type AssignMachineCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	locationID kernel.UUID
	machineID  kernel.UUID
	quantity   int

	guard guard.ConstructorGuard
}

// NewAssignMachineCommand creates a command to assign a machine.
func NewAssignMachineCommand(
	orderID, locationID, machineID kernel.UUID, quantity int,
) (AssignMachineCommand, error) {
	cmd := AssignMachineCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setLocationID(locationID),
		cmd.setMachineID(machineID),
		cmd.setQuantity(quantity),
	); err != nil {
		return AssignMachineCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignMachineCommand) Validate() error {
	return c.guard.Validate(ErrAssignMachineCommandIsNotConstructed)
}

// OrderID returns the order being planned.
func (c AssignMachineCommand) OrderID() kernel.UUID {
	return c.orderID
}

// LocationID returns the location the machine belongs to.
func (c AssignMachineCommand) LocationID() kernel.UUID {
	return c.locationID
}

// MachineID returns the machine receiving the assignment.
func (c AssignMachineCommand) MachineID() kernel.UUID {
	return c.machineID
}

// Quantity returns the planned quantity.
func (c AssignMachineCommand) Quantity() int {
	return c.quantity
}

func (c *AssignMachineCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AssignMachineCommand) setLocationID(locationID kernel.UUID) error {
	if err := locationID.Validate(); err != nil {
		return err
	}

	c.locationID = locationID
	return nil
}

func (c *AssignMachineCommand) setMachineID(machineID kernel.UUID) error {
	if err := machineID.Validate(); err != nil {
		return err
	}

	c.machineID = machineID
	return nil
}

func (c *AssignMachineCommand) setQuantity(quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: got %d", ErrAssignedQuantityIsInvalid, quantity)
	}

	c.quantity = quantity
	return nil
}
