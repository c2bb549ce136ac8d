package commands

import (
	"errors"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/guard"
)

var ErrPauseLocationCommandIsNotConstructed = errors.New(
	"PauseLocationCommand must be created via NewPauseLocationCommand constructor",
)

// PauseLocationCommand represents a request to suspend work on an order at
// one production location.
type PauseLocationCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	locationID kernel.UUID

	guard guard.ConstructorGuard
}

// NewPauseLocationCommand creates a command to pause work at a location.
func NewPauseLocationCommand(orderID, locationID kernel.UUID) (PauseLocationCommand, error) {
	cmd := PauseLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setLocationID(locationID),
	); err != nil {
		return PauseLocationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PauseLocationCommand) Validate() error {
	return c.guard.Validate(ErrPauseLocationCommandIsNotConstructed)
}

// OrderID returns the order to pause.
func (c PauseLocationCommand) OrderID() kernel.UUID {
	return c.orderID
}

// LocationID returns the location where work pauses.
func (c PauseLocationCommand) LocationID() kernel.UUID {
	return c.locationID
}

func (c *PauseLocationCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PauseLocationCommand) setLocationID(locationID kernel.UUID) error {
	if err := locationID.Validate(); err != nil {
		return err
	}

	c.locationID = locationID
	return nil
}
