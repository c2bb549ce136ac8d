package commands

import (
	"errors"
	"fmt"
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrNumberIsRequired       = errors.New("order number is required")
	ErrTotalQuantityIsInvalid = errors.New("total quantity must be greater than 0")
	ErrLocationIDsAreRequired = errors.New("at least one location must be selected")
)

// CreateOrderCommand represents a request to register a new manufacturing
// order with its production route.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, "ORD-1042", 200, dueDate, locationIDs)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, auditLog, notifier, cache)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	number        string
	totalQuantity int
	dueDate       time.Time
	locationIDs   []kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates that the order ID is valid, the number is not empty, the
// quantity is positive, and at least one valid location ID is given.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	number string,
	totalQuantity int,
	dueDate time.Time,
	locationIDs []kernel.UUID,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		dueDate: dueDate,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setNumber(number),
		orderCommand.setTotalQuantity(totalQuantity),
		orderCommand.setLocationIDs(locationIDs),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Number returns the human-facing order number.
func (c CreateOrderCommand) Number() string {
	return c.number
}

// TotalQuantity returns the nominal quantity to produce.
func (c CreateOrderCommand) TotalQuantity() int {
	return c.totalQuantity
}

// DueDate returns the promised completion date.
func (c CreateOrderCommand) DueDate() time.Time {
	return c.dueDate
}

// LocationIDs returns the selected production locations.
func (c CreateOrderCommand) LocationIDs() []kernel.UUID {
	return c.locationIDs
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setNumber(number string) error {
	if number == "" {
		return ErrNumberIsRequired
	}

	c.number = number
	return nil
}

func (c *CreateOrderCommand) setTotalQuantity(totalQuantity int) error {
	if totalQuantity <= 0 {
		return ErrTotalQuantityIsInvalid
	}

	c.totalQuantity = totalQuantity
	return nil
}

func (c *CreateOrderCommand) setLocationIDs(locationIDs []kernel.UUID) error {
	if len(locationIDs) == 0 {
		return ErrLocationIDsAreRequired
	}
	for i, id := range locationIDs {
		if err := id.Validate(); err != nil {
			return fmt.Errorf("locationIds[%d]: %w", i, err)
		}
	}

	c.locationIDs = locationIDs
	return nil
}
