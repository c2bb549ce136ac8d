// Package guard provides a defensive construction pattern for value objects,
// commands, and queries. Embedding a ConstructorGuard in a struct makes
// zero-value instances detectable: only values produced by the designated
// constructor pass Validate.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is supplied for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks whether its owner was created through a constructor
// function. The zero value always fails validation, which is the point:
// structs assembled by hand skip the invariant checks the constructor runs.
//
// Example usage:
//
//	type ShipOrderCommand struct {
//	    orderID kernel.UUID
//	    guard   guard.ConstructorGuard
//	}
//
//	func NewShipOrderCommand(orderID kernel.UUID) (ShipOrderCommand, error) {
//	    ...
//	    return ShipOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c ShipOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrShipOrderCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks its owner as properly
// constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. For a zero-value guard it
// returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
