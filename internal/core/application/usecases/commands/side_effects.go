package commands

import (
	"context"
	"time"

	"shopfloor/internal/core/domain/model/audit"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/location"
	"shopfloor/internal/core/ports"
)

// sideEffects bundles the post-commit collaborators shared by command
// handlers: the audit trail, the notification sink, and the queue-board
// cache. Everything here is fire-and-forget; failures never surface to the
// caller of Handle.
type sideEffects struct {
	auditLog ports.AuditLog
	notifier ports.Notifier
	cache    ports.QueueBoardCache
}

func newSideEffects(auditLog ports.AuditLog, notifier ports.Notifier, cache ports.QueueBoardCache) sideEffects {
	return sideEffects{
		auditLog: auditLog,
		notifier: notifier,
		cache:    cache,
	}
}

// record appends an audit entry and, when eventType is non-empty, publishes
// the matching notification. Called only after the transaction committed.
func (e sideEffects) record(
	ctx context.Context,
	orderID kernel.UUID,
	locationID *kernel.UUID,
	userID *string,
	action, details, eventType string,
) {
	entry, err := audit.NewEntry(kernel.NewUUID(), orderID, locationID, userID, action, details, time.Now())
	if err == nil {
		e.auditLog.Record(ctx, entry)
	}
	if eventType != "" {
		e.notifier.Notify(ctx, orderID, locationID, eventType)
	}
}

// invalidate drops the cached queue board for a location whose queue
// changed. The next board read falls through to the repository.
func (e sideEffects) invalidate(ctx context.Context, locationID kernel.UUID) {
	if e.cache == nil {
		return
	}
	_ = e.cache.Invalidate(ctx, locationID)
}

// queueTails reads the current tail position of every given location's
// queue, feeding the auto-admission service. Each tail read holds the
// location's queue lock until the surrounding transaction ends, so the
// positions handed to admission cannot be taken by a concurrent writer.
func queueTails(
	ctx context.Context, repo ports.OrderRepository, selected []*location.Location,
) (map[kernel.UUID]int, error) {
	tails := make(map[kernel.UUID]int, len(selected))
	for _, loc := range selected {
		maxPosition, err := repo.MaxQueuePositionAtLocation(ctx, loc.ID())
		if err != nil {
			return nil, err
		}
		tails[loc.ID()] = maxPosition
	}
	return tails, nil
}
