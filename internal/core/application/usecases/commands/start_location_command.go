package commands

import (
	"errors"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/guard"
)

var ErrStartLocationCommandIsNotConstructed = errors.New(
	"StartLocationCommand must be created via NewStartLocationCommand constructor",
)

// StartLocationCommand represents a request to begin (or resume) work on an
// order at one production location.
type StartLocationCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	locationID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartLocationCommand creates a command to start work at a location.
func NewStartLocationCommand(orderID, locationID kernel.UUID) (StartLocationCommand, error) {
	cmd := StartLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setLocationID(locationID),
	); err != nil {
		return StartLocationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartLocationCommand) Validate() error {
	return c.guard.Validate(ErrStartLocationCommandIsNotConstructed)
}

// OrderID returns the order to start.
func (c StartLocationCommand) OrderID() kernel.UUID {
	return c.orderID
}

// LocationID returns the location where work begins.
func (c StartLocationCommand) LocationID() kernel.UUID {
	return c.locationID
}

func (c *StartLocationCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *StartLocationCommand) setLocationID(locationID kernel.UUID) error {
	if err := locationID.Validate(); err != nil {
		return err
	}

	c.locationID = locationID
	return nil
}
