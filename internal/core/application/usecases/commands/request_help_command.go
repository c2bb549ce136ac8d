package commands

import (
	"errors"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/guard"
)

var ErrRequestHelpCommandIsNotConstructed = errors.New(
	"RequestHelpCommand must be created via NewRequestHelpCommand constructor",
)

// RequestHelpCommand represents an operator calling for assistance on an
// order at their location. It changes no order state; it exists to reach
// the audit trail and the notification sink.
type RequestHelpCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	locationID kernel.UUID
	userID     string
	message    string

	guard guard.ConstructorGuard
}

// NewRequestHelpCommand creates a help request. userID and message are
// optional.
func NewRequestHelpCommand(orderID, locationID kernel.UUID, userID, message string) (RequestHelpCommand, error) {
	cmd := RequestHelpCommand{
		userID:  userID,
		message: message,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setLocationID(locationID),
	); err != nil {
		return RequestHelpCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestHelpCommand) Validate() error {
	return c.guard.Validate(ErrRequestHelpCommandIsNotConstructed)
}

// OrderID returns the order help is requested for.
func (c RequestHelpCommand) OrderID() kernel.UUID {
	return c.orderID
}

// LocationID returns the location the operator is at.
func (c RequestHelpCommand) LocationID() kernel.UUID {
	return c.locationID
}

// UserID returns the requesting operator, possibly empty.
func (c RequestHelpCommand) UserID() string {
	return c.userID
}

// Message returns the free-form help message, possibly empty.
func (c RequestHelpCommand) Message() string {
	return c.message
}

func (c *RequestHelpCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RequestHelpCommand) setLocationID(locationID kernel.UUID) error {
	if err := locationID.Validate(); err != nil {
		return err
	}

	c.locationID = locationID
	return nil
}
