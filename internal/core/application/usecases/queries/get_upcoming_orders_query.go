package queries

import (
	"errors"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/guard"
)

var ErrGetUpcomingOrdersQueryIsNotConstructed = errors.New(
	"GetUpcomingOrdersQuery must be created via NewGetUpcomingOrdersQuery constructor",
)

// GetUpcomingOrdersQuery retrieves every order that has not yet reached a
// location, split into upcoming (eligible now) and blocked (gated) with
// the failing gate spelled out.
type GetUpcomingOrdersQuery struct {
	locationID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetUpcomingOrdersQuery creates an upcoming-orders query for one location.
func NewGetUpcomingOrdersQuery(locationID kernel.UUID) (GetUpcomingOrdersQuery, error) {
	if err := locationID.Validate(); err != nil {
		return GetUpcomingOrdersQuery{}, err
	}

	return GetUpcomingOrdersQuery{
		locationID: locationID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetUpcomingOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUpcomingOrdersQueryIsNotConstructed)
}

// LocationID returns the location whose upcoming work is requested.
func (q GetUpcomingOrdersQuery) LocationID() kernel.UUID {
	return q.locationID
}

// GetUpcomingOrdersQueryResponse is one order that has not started at the
// location. Blocked orders carry the human-readable reason.
type GetUpcomingOrdersQueryResponse struct {
	OrderID  kernel.UUID
	Number   string
	Eligible bool
	Reason   string
}
