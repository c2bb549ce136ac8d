package commands

import (
	"errors"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/guard"
)

var ErrMarkRushCommandIsNotConstructed = errors.New(
	"MarkRushCommand must be created via NewMarkRushCommand constructor",
)

// MarkRushCommand represents flagging (or unflagging) an order as rush
// priority. Rush orders jump ahead of every non-rush row in all queues.
type MarkRushCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	rush    bool

	guard guard.ConstructorGuard
}

// NewMarkRushCommand creates a command to change an order's rush flag.
func NewMarkRushCommand(orderID kernel.UUID, rush bool) (MarkRushCommand, error) {
	cmd := MarkRushCommand{
		rush:  rush,
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return MarkRushCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkRushCommand) Validate() error {
	return c.guard.Validate(ErrMarkRushCommandIsNotConstructed)
}

// OrderID returns the order whose rush flag changes.
func (c MarkRushCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Rush reports whether the flag is being set or cleared.
func (c MarkRushCommand) Rush() bool {
	return c.rush
}

func (c *MarkRushCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
