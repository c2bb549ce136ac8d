package commands

import (
	"errors"
	"fmt"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/guard"
)

var (
	ErrSetQueuePositionCommandIsNotConstructed = errors.New(
		"SetQueuePositionCommand must be created via NewSetQueuePositionCommand constructor",
	)
	ErrGlobalPositionIsInvalid = errors.New("global queue position must be greater than 0")
)

// SetQueuePositionCommand represents admitting an order to the global
// queue, the gate in front of every primary entry stage.
type SetQueuePositionCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	position int

	guard guard.ConstructorGuard
}

// NewSetQueuePositionCommand creates a command to set an order's global
// queue position.
func NewSetQueuePositionCommand(orderID kernel.UUID, position int) (SetQueuePositionCommand, error) {
	cmd := SetQueuePositionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPosition(position),
	); err != nil {
		return SetQueuePositionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetQueuePositionCommand) Validate() error {
	return c.guard.Validate(ErrSetQueuePositionCommandIsNotConstructed)
}

// OrderID returns the order being admitted.
func (c SetQueuePositionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Position returns the global queue position.
func (c SetQueuePositionCommand) Position() int {
	return c.position
}

func (c *SetQueuePositionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SetQueuePositionCommand) setPosition(position int) error {
	if position < 1 {
		return fmt.Errorf("%w: got %d", ErrGlobalPositionIsInvalid, position)
	}

	c.position = position
	return nil
}
