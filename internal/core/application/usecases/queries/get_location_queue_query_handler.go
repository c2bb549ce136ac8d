package queries

import (
	"context"
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/order"
	"shopfloor/internal/core/domain/services"
	"shopfloor/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetLocationQueueQueryHandler reads a location's queue board.
//
// Reads go through the queue-board cache: dashboards poll this query every
// few seconds, and the refresh job keeps the cache warm, so the common
// path never touches postgres. On a miss the handler reads the queued
// rows with raw SQL, sorts them, and repopulates the cache.
type GetLocationQueueQueryHandler struct {
	db      *gorm.DB
	cache   ports.QueueBoardCache
	manager services.QueueManager
}

// NewGetLocationQueueQueryHandler creates a handler for queue board reads.
func NewGetLocationQueueQueryHandler(db *gorm.DB, cache ports.QueueBoardCache) GetLocationQueueQueryHandler {
	return GetLocationQueueQueryHandler{
		db:      db,
		cache:   cache,
		manager: services.NewQueueManager(),
	}
}

// Handle executes the query. The returned rows are in display order.
func (h GetLocationQueueQueryHandler) Handle(
	ctx context.Context, query GetLocationQueueQuery,
) ([]GetLocationQueueQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if entries, err := h.cache.Get(ctx, query.LocationID()); err == nil {
		return toBoard(entries), nil
	}

	entries, err := h.readQueuedEntries(ctx, query.LocationID())
	if err != nil {
		return nil, err
	}

	sorted := h.manager.Sort(entries)
	_ = h.cache.Set(ctx, query.LocationID(), sorted)

	return toBoard(sorted), nil
}

// Refresh re-reads the location's queued rows and overwrites the cached
// board, bypassing the cache on the read side. The refresh job calls this
// on every tick so dashboard polling stays on the cache.
func (h GetLocationQueueQueryHandler) Refresh(ctx context.Context, locationID kernel.UUID) error {
	if err := locationID.Validate(); err != nil {
		return err
	}

	entries, err := h.readQueuedEntries(ctx, locationID)
	if err != nil {
		return err
	}

	return h.cache.Set(ctx, locationID, h.manager.Sort(entries))
}

func (h GetLocationQueueQueryHandler) readQueuedEntries(
	ctx context.Context, locationID kernel.UUID,
) ([]services.QueueEntry, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.number,
			o.rush,
			o.rush_set_at,
			p.queue_position,
			o.created_at
		FROM order_progress p
		JOIN orders o ON o.id = p.order_id
		WHERE p.location_id = ? AND p.status = ?
	`, locationID.Bytes(), int(order.InQueue)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]services.QueueEntry, 0)
	for rows.Next() {
		var (
			id            uuid.UUID
			entry         services.QueueEntry
			rushSetAt     *time.Time
			queuePosition *int
			createdAt     time.Time
		)
		if err = rows.Scan(&id, &entry.OrderNumber, &entry.Rush, &rushSetAt, &queuePosition, &createdAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		entry.OrderID = orderID
		entry.RushSetAt = rushSetAt
		entry.QueuePosition = queuePosition
		entry.CreatedAt = createdAt
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func toBoard(entries []services.QueueEntry) []GetLocationQueueQueryResponse {
	board := make([]GetLocationQueueQueryResponse, 0, len(entries))
	for i, entry := range entries {
		board = append(board, GetLocationQueueQueryResponse{
			OrderID:  entry.OrderID,
			Number:   entry.OrderNumber,
			Rush:     entry.Rush,
			Position: i + 1,
		})
	}
	return board
}
