package order

import (
	"errors"
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/errs"
)

// ErrLocationProgressIsNotConstructed is returned when a LocationProgress
// was not created through the package constructors.
var ErrLocationProgressIsNotConstructed = errors.New(
	"LocationProgress must be created via newLocationProgress or RestoreLocationProgress")

// LocationProgress tracks one order at one production location. It is an
// entity owned by the Order aggregate: identity is the (order, location)
// pair and all mutation goes through the aggregate root so the order-level
// invariants (finish cascade, quantity bounds) hold.
type LocationProgress struct {
	locationID        kernel.UUID
	status            Status
	queuePosition     *int
	completedQuantity int
	startedAt         *time.Time
	completedAt       *time.Time

	isConstructed bool
}

// newLocationProgress creates the initial NotStarted progress row for a
// selected location.
func newLocationProgress(locationID kernel.UUID) (*LocationProgress, error) {
	if err := locationID.Validate(); err != nil {
		return nil, err
	}
	return &LocationProgress{
		locationID:    locationID,
		status:        NotStarted,
		isConstructed: true,
	}, nil
}

// RestoreLocationProgress reconstructs a LocationProgress from persistence.
func RestoreLocationProgress(
	locationID kernel.UUID,
	status Status,
	queuePosition *int,
	completedQuantity int,
	startedAt, completedAt *time.Time,
) (*LocationProgress, error) {
	if err := locationID.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if completedQuantity < 0 {
		return nil, errs.NewValueIsInvalidError("completedQuantity")
	}
	return &LocationProgress{
		locationID:        locationID,
		status:            status,
		queuePosition:     queuePosition,
		completedQuantity: completedQuantity,
		startedAt:         startedAt,
		completedAt:       completedAt,
		isConstructed:     true,
	}, nil
}

// Validate ensures the LocationProgress was created via a constructor.
func (p *LocationProgress) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrLocationProgressIsNotConstructed
	}
	return nil
}

// LocationID returns the production location this row tracks.
func (p *LocationProgress) LocationID() kernel.UUID {
	return p.locationID
}

// Status returns the current lifecycle status at this location.
func (p *LocationProgress) Status() Status {
	return p.status
}

// QueuePosition returns the explicit queue position at this location.
// Meaningful only while the status is InQueue; nil otherwise.
func (p *LocationProgress) QueuePosition() *int {
	return p.queuePosition
}

// CompletedQuantity returns the quantity completed at this location so far.
func (p *LocationProgress) CompletedQuantity() int {
	return p.completedQuantity
}

// StartedAt returns when work first started at this location, or nil.
func (p *LocationProgress) StartedAt() *time.Time {
	return p.startedAt
}

// CompletedAt returns when this location finished the order, or nil.
func (p *LocationProgress) CompletedAt() *time.Time {
	return p.completedAt
}
