package ports

import (
	"context"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/services"
)

// QueueBoardCache caches each location's sorted queue for the dashboard.
//
// The queue-board query reads through the cache; the refresh job and
// mutating handlers repopulate or invalidate it. A cache miss returns
// ObjectNotFound and the caller falls back to the repository.
type QueueBoardCache interface {
	Get(ctx context.Context, locationID kernel.UUID) ([]services.QueueEntry, error)

	Set(ctx context.Context, locationID kernel.UUID, entries []services.QueueEntry) error

	// Invalidate drops the cached board for the location.
	Invalidate(ctx context.Context, locationID kernel.UUID) error
}
