// Package ports defines the contracts between the domain/application layers
// and infrastructure: repositories, the unit of work, the audit log, the
// notification sink, and the queue-board cache. These interfaces enable
// dependency inversion and testability.
package ports

import (
	"context"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// The aggregate loads and stores as a whole: the order row plus every
// per-location progress row.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	//
	// The stored version must equal the aggregate's version at load time;
	// on success the stored version is incremented. A mismatch means a
	// concurrent writer won and surfaces as ConcurrencyConflict.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate with all its progress rows.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetQueuedAtLocation retrieves every order with an InQueue row at the
	// given location. Inside a transaction it holds the location's queue
	// lock until commit, so queue renumbering and auto-admission serialize
	// per location.
	GetQueuedAtLocation(ctx context.Context, locationID kernel.UUID) ([]*order.Order, error)

	// MaxQueuePositionAtLocation returns the highest queue position in use
	// at the location, or 0 when its queue is empty. Inside a transaction it
	// holds the same per-location queue lock as GetQueuedAtLocation, so the
	// returned tail stays the tail until the caller commits.
	MaxQueuePositionAtLocation(ctx context.Context, locationID kernel.UUID) (int, error)

	// MaxGlobalQueuePosition returns the highest global queue position in
	// use across all orders, or 0 when no order has been admitted.
	MaxGlobalQueuePosition(ctx context.Context) (int, error)

	// GetAllUnfinished retrieves every order not yet finished at all of its
	// locations. Used by the upcoming/blocked classification.
	GetAllUnfinished(ctx context.Context) ([]*order.Order, error)
}
