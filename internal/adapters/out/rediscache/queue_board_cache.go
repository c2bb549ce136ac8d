// Package rediscache caches each location's sorted queue board in Redis.
// The board is read on every dashboard refresh but changes only on queue
// mutations, so a short TTL plus explicit invalidation keeps it fresh.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/services"
	"shopfloor/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "queueboard:"

// entryDTO is the JSON shape of one cached queue row.
type entryDTO struct {
	OrderID       string     `json:"orderId"`
	OrderNumber   string     `json:"orderNumber"`
	Rush          bool       `json:"rush"`
	RushSetAt     *time.Time `json:"rushSetAt,omitempty"`
	QueuePosition *int       `json:"queuePosition,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// RedisQueueBoardCache implements QueueBoardCache on go-redis.
type RedisQueueBoardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisQueueBoardCache creates a queue-board cache with the given TTL.
func NewRedisQueueBoardCache(client *redis.Client, ttl time.Duration) *RedisQueueBoardCache {
	return &RedisQueueBoardCache{client: client, ttl: ttl}
}

// Get returns the cached board for the location, or ObjectNotFound on a
// cache miss.
func (c *RedisQueueBoardCache) Get(
	ctx context.Context, locationID kernel.UUID,
) ([]services.QueueEntry, error) {
	if err := locationID.Validate(); err != nil {
		return nil, err
	}

	payload, err := c.client.Get(ctx, keyPrefix+locationID.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errs.NewObjectNotFoundError("queueBoard", locationID.String())
		}
		return nil, err
	}

	var dtos []entryDTO
	if err := json.Unmarshal(payload, &dtos); err != nil {
		return nil, err
	}

	entries := make([]services.QueueEntry, 0, len(dtos))
	for _, dto := range dtos {
		orderID, idErr := kernel.UUIDFromString(dto.OrderID)
		if idErr != nil {
			return nil, idErr
		}
		entries = append(entries, services.QueueEntry{
			OrderID:       orderID,
			OrderNumber:   dto.OrderNumber,
			Rush:          dto.Rush,
			RushSetAt:     dto.RushSetAt,
			QueuePosition: dto.QueuePosition,
			CreatedAt:     dto.CreatedAt,
		})
	}

	return entries, nil
}

// Set stores the board for the location under the configured TTL.
func (c *RedisQueueBoardCache) Set(
	ctx context.Context, locationID kernel.UUID, entries []services.QueueEntry,
) error {
	if err := locationID.Validate(); err != nil {
		return err
	}

	dtos := make([]entryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, entryDTO{
			OrderID:       entry.OrderID.String(),
			OrderNumber:   entry.OrderNumber,
			Rush:          entry.Rush,
			RushSetAt:     entry.RushSetAt,
			QueuePosition: entry.QueuePosition,
			CreatedAt:     entry.CreatedAt,
		})
	}

	payload, err := json.Marshal(dtos)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, keyPrefix+locationID.String(), payload, c.ttl).Err()
}

// Invalidate drops the cached board for the location.
func (c *RedisQueueBoardCache) Invalidate(ctx context.Context, locationID kernel.UUID) error {
	if err := locationID.Validate(); err != nil {
		return err
	}

	return c.client.Del(ctx, keyPrefix+locationID.String()).Err()
}
