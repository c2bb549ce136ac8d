package machine

import (
	"errors"
	"fmt"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/errs"
)

// ErrAssignmentIsNotConstructed is returned when an Assignment instance was
// not created through NewAssignment or RestoreAssignment.
var ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment constructor")

// Assignment plans a share of an order's workload at a location onto one
// machine. Identity is the (orderID, locationID, machineID) triple. The
// assigned quantity is advisory: over- or under-allocation relative to the
// order's effective quantity is permitted.
type Assignment struct {
	orderID    kernel.UUID
	locationID kernel.UUID
	machineID  kernel.UUID
	quantity   int

	isConstructed bool
}

// NewAssignment creates a validated Assignment. Quantity must be >= 0.
func NewAssignment(orderID, locationID, machineID kernel.UUID, quantity int) (*Assignment, error) {
	a := &Assignment{isConstructed: true}

	if err := errors.Join(
		a.setOrderID(orderID),
		a.setLocationID(locationID),
		a.setMachineID(machineID),
		a.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAssignment reconstructs an Assignment from persistence.
func RestoreAssignment(orderID, locationID, machineID kernel.UUID, quantity int) (*Assignment, error) {
	return NewAssignment(orderID, locationID, machineID, quantity)
}

// Validate ensures the Assignment was created via a constructor.
func (a *Assignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}
	return nil
}

// OrderID returns the planned order.
func (a *Assignment) OrderID() kernel.UUID {
	return a.orderID
}

// LocationID returns the production location of the planned work.
func (a *Assignment) LocationID() kernel.UUID {
	return a.locationID
}

// MachineID returns the machine carrying the planned workload.
func (a *Assignment) MachineID() kernel.UUID {
	return a.machineID
}

// Quantity returns the advisory planned quantity.
func (a *Assignment) Quantity() int {
	return a.quantity
}

// SetQuantity overwrites the planned quantity. Quantity must be >= 0.
func (a *Assignment) SetQuantity(quantity int) error {
	return a.setQuantity(quantity)
}

func (a *Assignment) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	a.orderID = orderID
	return nil
}

func (a *Assignment) setLocationID(locationID kernel.UUID) error {
	if err := locationID.Validate(); err != nil {
		return err
	}
	a.locationID = locationID
	return nil
}

func (a *Assignment) setMachineID(machineID kernel.UUID) error {
	if err := machineID.Validate(); err != nil {
		return err
	}
	a.machineID = machineID
	return nil
}

func (a *Assignment) setQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("assignedQuantity",
			fmt.Errorf("%d is negative", quantity))
	}
	a.quantity = quantity
	return nil
}
