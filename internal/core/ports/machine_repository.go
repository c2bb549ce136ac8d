package ports

import (
	"context"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/machine"
)

// MachineRepository defines the persistence contract for machines and the
// advisory machine assignments.
type MachineRepository interface {
	// Add persists a new machine. The code must be unique.
	Add(ctx context.Context, m *machine.Machine) error

	// Get retrieves a machine by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*machine.Machine, error)

	// GetByLocation retrieves every machine registered at the location.
	GetByLocation(ctx context.Context, locationID kernel.UUID) ([]*machine.Machine, error)

	// SaveAssignment upserts the assignment for its (order, location,
	// machine) triple.
	SaveAssignment(ctx context.Context, a *machine.Assignment) error

	// GetAssignment retrieves the assignment for the triple, or
	// ObjectNotFound when none exists.
	GetAssignment(ctx context.Context, orderID, locationID, machineID kernel.UUID) (*machine.Assignment, error)

	// GetAssignmentsForOrder retrieves every assignment of the order.
	GetAssignmentsForOrder(ctx context.Context, orderID kernel.UUID) ([]*machine.Assignment, error)
}
