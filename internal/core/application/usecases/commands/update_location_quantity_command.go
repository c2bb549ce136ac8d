package commands

import (
	"errors"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/guard"
)

var ErrUpdateLocationQuantityCommandIsNotConstructed = errors.New(
	"UpdateLocationQuantityCommand must be created via NewUpdateLocationQuantityCommand constructor",
)

// UpdateLocationQuantityCommand represents an in-flight correction of the
// completed quantity at one production location. Unlike finishing, the
// value must already be within the effective range.
type UpdateLocationQuantityCommand struct { //nolint:recvcheck //using for validation
	orderID           kernel.UUID
	locationID        kernel.UUID
	completedQuantity int

	guard guard.ConstructorGuard
}

// NewUpdateLocationQuantityCommand creates a command to correct a
// location's completed quantity.
func NewUpdateLocationQuantityCommand(
	orderID, locationID kernel.UUID, completedQuantity int,
) (UpdateLocationQuantityCommand, error) {
	cmd := UpdateLocationQuantityCommand{
		completedQuantity: completedQuantity,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setLocationID(locationID),
	); err != nil {
		return UpdateLocationQuantityCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateLocationQuantityCommand) Validate() error {
	return c.guard.Validate(ErrUpdateLocationQuantityCommandIsNotConstructed)
}

// OrderID returns the order being corrected.
func (c UpdateLocationQuantityCommand) OrderID() kernel.UUID {
	return c.orderID
}

// LocationID returns the location being corrected.
func (c UpdateLocationQuantityCommand) LocationID() kernel.UUID {
	return c.locationID
}

// CompletedQuantity returns the corrected quantity.
func (c UpdateLocationQuantityCommand) CompletedQuantity() int {
	return c.completedQuantity
}

func (c *UpdateLocationQuantityCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateLocationQuantityCommand) setLocationID(locationID kernel.UUID) error {
	if err := locationID.Validate(); err != nil {
		return err
	}

	c.locationID = locationID
	return nil
}
