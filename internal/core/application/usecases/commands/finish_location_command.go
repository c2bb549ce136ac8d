package commands

import (
	"errors"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/guard"
)

var ErrFinishLocationCommandIsNotConstructed = errors.New(
	"FinishLocationCommand must be created via NewFinishLocationCommand constructor",
)

// FinishLocationCommand represents a request to complete an order at one
// production location with its final counted quantity.
//
// The quantity is intentionally unvalidated here: finishing clamps it into
// the effective range instead of rejecting it, so operators can always
// close out a location.
type FinishLocationCommand struct { //nolint:recvcheck //using for validation
	orderID           kernel.UUID
	locationID        kernel.UUID
	completedQuantity int

	guard guard.ConstructorGuard
}

// NewFinishLocationCommand creates a command to finish work at a location.
func NewFinishLocationCommand(orderID, locationID kernel.UUID, completedQuantity int) (FinishLocationCommand, error) {
	cmd := FinishLocationCommand{
		completedQuantity: completedQuantity,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setLocationID(locationID),
	); err != nil {
		return FinishLocationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FinishLocationCommand) Validate() error {
	return c.guard.Validate(ErrFinishLocationCommandIsNotConstructed)
}

// OrderID returns the order to finish.
func (c FinishLocationCommand) OrderID() kernel.UUID {
	return c.orderID
}

// LocationID returns the location being closed out.
func (c FinishLocationCommand) LocationID() kernel.UUID {
	return c.locationID
}

// CompletedQuantity returns the final counted quantity.
func (c FinishLocationCommand) CompletedQuantity() int {
	return c.completedQuantity
}

func (c *FinishLocationCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *FinishLocationCommand) setLocationID(locationID kernel.UUID) error {
	if err := locationID.Validate(); err != nil {
		return err
	}

	c.locationID = locationID
	return nil
}
