// Package machine contains equipment reference data and the advisory
// workload-assignment records layered on top of the order workflow. An
// Assignment is a planning hint only: it never alters order-location status
// and no cross-machine sum constraint is enforced.
package machine

import (
	"errors"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/errs"
)

// ErrMachineIsNotConstructed is returned when a Machine instance was not
// created through NewMachine or RestoreMachine.
var ErrMachineIsNotConstructed = errors.New("Machine must be created via NewMachine constructor")

// Machine represents one piece of equipment. A machine belongs to exactly
// one production location and carries a unique code.
type Machine struct {
	id         kernel.UUID
	locationID kernel.UUID
	code       string

	isConstructed bool
}

// NewMachine creates a validated Machine bound to a location.
func NewMachine(id, locationID kernel.UUID, code string) (*Machine, error) {
	m := &Machine{isConstructed: true}

	if err := errors.Join(
		m.setID(id),
		m.setLocationID(locationID),
		m.setCode(code),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// RestoreMachine reconstructs a Machine from persistence.
func RestoreMachine(id, locationID kernel.UUID, code string) (*Machine, error) {
	return NewMachine(id, locationID, code)
}

// Validate ensures the Machine was created via a constructor.
func (m *Machine) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMachineIsNotConstructed
	}
	return nil
}

// ID returns the machine's unique identifier.
func (m *Machine) ID() kernel.UUID {
	return m.id
}

// LocationID returns the production location this machine belongs to.
func (m *Machine) LocationID() kernel.UUID {
	return m.locationID
}

// Code returns the unique machine code.
func (m *Machine) Code() string {
	return m.code
}

func (m *Machine) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Machine) setLocationID(locationID kernel.UUID) error {
	if err := locationID.Validate(); err != nil {
		return err
	}
	m.locationID = locationID
	return nil
}

func (m *Machine) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	m.code = code
	return nil
}
