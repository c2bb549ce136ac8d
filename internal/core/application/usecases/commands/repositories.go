// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"shopfloor/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// LocationRepoFactory provides access to the location registry within a transaction.
	LocationRepoFactory interface {
		LocationRepository() ports.LocationRepository
	}

	// MachineRepoFactory provides access to the machine repository within a transaction.
	MachineRepoFactory interface {
		MachineRepository() ports.MachineRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only touch the order aggregate.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW manages transactions spanning orders and the location registry.
	// Used by every command that evaluates eligibility or auto-admission,
	// which need the location snapshot inside the same transaction.
	UoW interface {
		TxManager
		OrderRepoFactory
		LocationRepoFactory
	}

	// UoWFactory creates new unit of work instances for order+location operations.
	UoWFactory interface {
		Create() UoW
	}

	// MachineUoW manages transactions for machine assignment operations,
	// which validate against both the machine registry and the order.
	MachineUoW interface {
		TxManager
		OrderRepoFactory
		MachineRepoFactory
	}

	// MachineUoWFactory creates new machine unit of work instances.
	MachineUoWFactory interface {
		Create() MachineUoW
	}
)
