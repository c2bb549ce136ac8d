package commands

import (
	"errors"
	"fmt"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/guard"
)

var (
	ErrShipOrderCommandIsNotConstructed = errors.New(
		"ShipOrderCommand must be created via NewShipOrderCommand constructor",
	)
	ErrShippedQuantityIsInvalid = errors.New("shipped quantity must not be negative")
)

// ShipOrderCommand represents recording the cumulative shipped quantity of
// an order. The aggregate derives the shipped / partially-shipped flags.
type ShipOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	shippedQuantity int

	guard guard.ConstructorGuard
}

// NewShipOrderCommand creates a command to record a shipment.
func NewShipOrderCommand(orderID kernel.UUID, shippedQuantity int) (ShipOrderCommand, error) {
	cmd := ShipOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setShippedQuantity(shippedQuantity),
	); err != nil {
		return ShipOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ShipOrderCommand) Validate() error {
	return c.guard.Validate(ErrShipOrderCommandIsNotConstructed)
}

// OrderID returns the order being shipped.
func (c ShipOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ShippedQuantity returns the cumulative shipped quantity.
func (c ShipOrderCommand) ShippedQuantity() int {
	return c.shippedQuantity
}

func (c *ShipOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ShipOrderCommand) setShippedQuantity(shippedQuantity int) error {
	if shippedQuantity < 0 {
		return fmt.Errorf("%w: got %d", ErrShippedQuantityIsInvalid, shippedQuantity)
	}

	c.shippedQuantity = shippedQuantity
	return nil
}
