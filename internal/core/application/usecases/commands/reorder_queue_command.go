package commands

import (
	"errors"
	"fmt"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/guard"
)

var (
	ErrReorderQueueCommandIsNotConstructed = errors.New(
		"ReorderQueueCommand must be created via NewReorderQueueCommand constructor",
	)
	ErrNewPositionIsInvalid = errors.New("new position must be greater than 0")
)

// ReorderQueueCommand represents a request to move one queued order to a
// new position within a location's non-rush queue.
type ReorderQueueCommand struct { //nolint:recvcheck //using for validation
	locationID  kernel.UUID
	orderID     kernel.UUID
	newPosition int

	guard guard.ConstructorGuard
}

// NewReorderQueueCommand creates a command to reorder a location queue.
func NewReorderQueueCommand(locationID, orderID kernel.UUID, newPosition int) (ReorderQueueCommand, error) {
	cmd := ReorderQueueCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setLocationID(locationID),
		cmd.setOrderID(orderID),
		cmd.setNewPosition(newPosition),
	); err != nil {
		return ReorderQueueCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReorderQueueCommand) Validate() error {
	return c.guard.Validate(ErrReorderQueueCommandIsNotConstructed)
}

// LocationID returns the location whose queue is reordered.
func (c ReorderQueueCommand) LocationID() kernel.UUID {
	return c.locationID
}

// OrderID returns the order being moved.
func (c ReorderQueueCommand) OrderID() kernel.UUID {
	return c.orderID
}

// NewPosition returns the requested position within the non-rush queue.
func (c ReorderQueueCommand) NewPosition() int {
	return c.newPosition
}

func (c *ReorderQueueCommand) setLocationID(locationID kernel.UUID) error {
	if err := locationID.Validate(); err != nil {
		return err
	}

	c.locationID = locationID
	return nil
}

func (c *ReorderQueueCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ReorderQueueCommand) setNewPosition(newPosition int) error {
	if newPosition < 1 {
		return fmt.Errorf("%w: got %d", ErrNewPositionIsInvalid, newPosition)
	}

	c.newPosition = newPosition
	return nil
}
