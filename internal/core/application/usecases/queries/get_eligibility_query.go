package queries

import (
	"errors"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/guard"
)

var ErrGetEligibilityQueryIsNotConstructed = errors.New(
	"GetEligibilityQuery must be created via NewGetEligibilityQuery constructor",
)

// GetEligibilityQuery asks whether one order may start work at one
// location right now.
type GetEligibilityQuery struct {
	orderID    kernel.UUID
	locationID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetEligibilityQuery creates an eligibility query for one
// (order, location) pair.
func NewGetEligibilityQuery(orderID, locationID kernel.UUID) (GetEligibilityQuery, error) {
	if err := errors.Join(orderID.Validate(), locationID.Validate()); err != nil {
		return GetEligibilityQuery{}, err
	}

	return GetEligibilityQuery{
		orderID:    orderID,
		locationID: locationID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetEligibilityQuery) Validate() error {
	return q.guard.Validate(ErrGetEligibilityQueryIsNotConstructed)
}

// OrderID returns the order under test.
func (q GetEligibilityQuery) OrderID() kernel.UUID {
	return q.orderID
}

// LocationID returns the target location.
func (q GetEligibilityQuery) LocationID() kernel.UUID {
	return q.locationID
}

// GetEligibilityQueryResponse is the gating verdict for the pair.
type GetEligibilityQueryResponse struct {
	Eligible bool
	Reason   string
}
