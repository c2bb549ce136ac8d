// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/guard"
)

var ErrGetLocationQueueQueryIsNotConstructed = errors.New(
	"GetLocationQueueQuery must be created via NewGetLocationQueueQuery constructor",
)

// GetLocationQueueQuery retrieves a location's queue board: every queued
// order in display order.
//
// Example:
//
//	query, err := NewGetLocationQueueQuery(locationID)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetLocationQueueQueryHandler(db, cache)
//
//	board, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to read queue board: %w", err)
//	}
//	for _, row := range board {
//	    fmt.Printf("%d. %s\n", row.Position, row.Number)
//	}
type GetLocationQueueQuery struct {
	locationID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetLocationQueueQuery creates a query for one location's queue board.
func NewGetLocationQueueQuery(locationID kernel.UUID) (GetLocationQueueQuery, error) {
	if err := locationID.Validate(); err != nil {
		return GetLocationQueueQuery{}, err
	}

	return GetLocationQueueQuery{
		locationID: locationID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetLocationQueueQuery) Validate() error {
	return q.guard.Validate(ErrGetLocationQueueQueryIsNotConstructed)
}

// LocationID returns the location whose board is requested.
func (q GetLocationQueueQuery) LocationID() kernel.UUID {
	return q.locationID
}

// GetLocationQueueQueryResponse is one row of the queue board. Position is
// the display position after sorting, counted from 1; rush rows come first
// regardless of their stored queue position.
type GetLocationQueueQueryResponse struct {
	OrderID  kernel.UUID
	Number   string
	Rush     bool
	Position int
}
