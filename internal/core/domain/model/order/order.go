package order

import (
	"errors"
	"fmt"
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/location"
	"shopfloor/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order represents a manufacturing order moving through its selected
// production locations. It is the aggregate root: every status change,
// quantity update, and queue placement of its per-location progress rows
// goes through methods on this type.
//
// Order follows these invariants:
//   - Order number is non-empty and unique across the system
//   - Total quantity is positive
//   - At least one production location is selected, without duplicates
//   - 0 <= completedQuantity <= ceil(totalQuantity x countMultiplier) at
//     every location, after every mutation
//   - 0 <= shippedQuantity <= totalQuantity
//   - Status transitions follow the LocationProgress state machine
type Order struct {
	id            kernel.UUID
	number        string
	totalQuantity int
	dueDate       time.Time

	rush      bool
	rushSetAt *time.Time

	// queuePosition is the order's global queue position, gating admission
	// into primary entry stages. Nil until the order is admitted.
	queuePosition *int

	isFinished         bool
	isShipped          bool
	isPartiallyShipped bool
	shippedQuantity    int

	createdAt time.Time
	version   int

	progress []*LocationProgress

	isConstructed bool
}

// NewOrder creates a new Order with one NotStarted progress row per
// selected location.
//
// Parameters:
//   - id: unique identifier
//   - number: unique order number (required)
//   - totalQuantity: nominal quantity, must be positive
//   - dueDate: promised completion date
//   - selectedLocationIDs: production stages this order passes through;
//     at least one, no duplicates
//   - createdAt: creation timestamp, used as the queue-ordering tiebreaker
func NewOrder(
	id kernel.UUID,
	number string,
	totalQuantity int,
	dueDate time.Time,
	selectedLocationIDs []kernel.UUID,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		dueDate:       dueDate,
		createdAt:     createdAt,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setTotalQuantity(totalQuantity),
		o.setSelectedLocations(selectedLocationIDs),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistence, including
// its progress rows and optimistic-concurrency version.
func RestoreOrder(
	id kernel.UUID,
	number string,
	totalQuantity int,
	dueDate time.Time,
	rush bool,
	rushSetAt *time.Time,
	queuePosition *int,
	isFinished bool,
	isShipped bool,
	isPartiallyShipped bool,
	shippedQuantity int,
	createdAt time.Time,
	version int,
	progress []*LocationProgress,
) (*Order, error) {
	if version < 1 {
		return nil, errs.NewVersionIsInvalidErrorWithCause("order version",
			fmt.Errorf("%d is not a valid version", version))
	}
	if len(progress) == 0 {
		return nil, errs.NewValueIsRequiredError("progress")
	}
	for _, p := range progress {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}

	o := &Order{
		dueDate:            dueDate,
		rush:               rush,
		rushSetAt:          rushSetAt,
		queuePosition:      queuePosition,
		isFinished:         isFinished,
		isShipped:          isShipped,
		isPartiallyShipped: isPartiallyShipped,
		shippedQuantity:    shippedQuantity,
		createdAt:          createdAt,
		version:            version,
		progress:           progress,
		isConstructed:      true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setTotalQuantity(totalQuantity),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the unique order number.
func (o *Order) Number() string {
	return o.number
}

// TotalQuantity returns the order's nominal quantity.
func (o *Order) TotalQuantity() int {
	return o.totalQuantity
}

// DueDate returns the promised completion date.
func (o *Order) DueDate() time.Time {
	return o.dueDate
}

// IsRush reports whether the order carries the rush priority flag.
func (o *Order) IsRush() bool {
	return o.rush
}

// RushSetAt returns when the rush flag was set, or nil. Rush orders sort
// among themselves by this timestamp.
func (o *Order) RushSetAt() *time.Time {
	return o.rushSetAt
}

// QueuePosition returns the order's global queue position, or nil if the
// order has not been admitted to the global queue.
func (o *Order) QueuePosition() *int {
	return o.queuePosition
}

// IsFinished reports whether every selected location has finished this order.
func (o *Order) IsFinished() bool {
	return o.isFinished
}

// IsShipped reports whether the full quantity has been shipped.
func (o *Order) IsShipped() bool {
	return o.isShipped
}

// IsPartiallyShipped reports whether some but not all quantity has shipped.
func (o *Order) IsPartiallyShipped() bool {
	return o.isPartiallyShipped
}

// ShippedQuantity returns the cumulative shipped quantity.
func (o *Order) ShippedQuantity() int {
	return o.shippedQuantity
}

// CreatedAt returns the order's creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Version returns the optimistic-concurrency version. The repository checks
// and increments it inside the mutating transaction; a stale version
// surfaces as a ConcurrencyConflict.
func (o *Order) Version() int {
	return o.version
}

// Progress returns the per-location progress rows.
func (o *Order) Progress() []*LocationProgress {
	return o.progress
}

// SelectedLocationIDs returns the identifiers of all locations this order
// was created with.
func (o *Order) SelectedLocationIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(o.progress))
	for _, p := range o.progress {
		ids = append(ids, p.locationID)
	}
	return ids
}

// ProgressAt returns the progress row for the given location, or
// ObjectNotFound if the order was not created with that location.
func (o *Order) ProgressAt(locationID kernel.UUID) (*LocationProgress, error) {
	for _, p := range o.progress {
		if p.locationID.IsEqual(locationID) {
			return p, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("locationId", locationID.String())
}

// StatusAt returns the status at the given location. Unknown is returned
// for locations the order was not created with.
func (o *Order) StatusAt(locationID kernel.UUID) Status {
	p, err := o.ProgressAt(locationID)
	if err != nil {
		return Unknown
	}
	return p.status
}

// EnqueueAt admits the order into the queue at the given location.
//
// Valid only from NotStarted. The queue position is assigned by the caller
// (the queue manager places new admissions at the trailing end of the
// non-rush ordering). Eligibility must have been checked before calling.
func (o *Order) EnqueueAt(loc *location.Location, position int) error {
	if err := loc.Validate(); err != nil {
		return err
	}
	if position <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("queuePosition",
			fmt.Errorf("%d is not greater than 0", position))
	}

	p, err := o.ProgressAt(loc.ID())
	if err != nil {
		return err
	}

	newStatus, err := p.status.Enqueue()
	if err != nil {
		return err
	}

	p.status = newStatus
	p.queuePosition = &position
	return nil
}

// StartAt begins (or resumes) work on the order at the given location.
//
// Valid from InQueue, NotStarted (queue-bypassing stages), and Paused.
// The started timestamp is set once, on the first start. The queue position
// is cleared: the row has left the queue.
func (o *Order) StartAt(loc *location.Location, now time.Time) error {
	if err := loc.Validate(); err != nil {
		return err
	}

	p, err := o.ProgressAt(loc.ID())
	if err != nil {
		return err
	}

	newStatus, err := p.status.Start()
	if err != nil {
		return err
	}

	p.status = newStatus
	p.queuePosition = nil
	if p.startedAt == nil {
		startedAt := now
		p.startedAt = &startedAt
	}
	return nil
}

// PauseAt suspends work on the order at the given location. Valid only from
// InProgress; the completed quantity is untouched.
func (o *Order) PauseAt(loc *location.Location) error {
	if err := loc.Validate(); err != nil {
		return err
	}

	p, err := o.ProgressAt(loc.ID())
	if err != nil {
		return err
	}

	newStatus, err := p.status.Pause()
	if err != nil {
		return err
	}

	p.status = newStatus
	return nil
}

// FinishAt completes the order at the given location.
//
// Valid from InProgress and Paused. The completed quantity is clamped into
// [0, effective max], unlike UpdateQuantityAt, which rejects out-of-range
// values. Sets the completion timestamp and, when this was the order's last
// unfinished location, marks the whole order finished.
func (o *Order) FinishAt(loc *location.Location, completedQuantity int, now time.Time) error {
	if err := loc.Validate(); err != nil {
		return err
	}

	p, err := o.ProgressAt(loc.ID())
	if err != nil {
		return err
	}

	newStatus, err := p.status.Finish()
	if err != nil {
		return err
	}

	maxQuantity := loc.EffectiveQuantity(o.totalQuantity)
	if completedQuantity < 0 {
		completedQuantity = 0
	}
	if completedQuantity > maxQuantity {
		completedQuantity = maxQuantity
	}

	p.status = newStatus
	p.completedQuantity = completedQuantity
	p.queuePosition = nil
	completedAt := now
	p.completedAt = &completedAt

	o.refreshFinished()
	return nil
}

// UpdateQuantityAt overwrites the completed quantity at the given location.
//
// Valid only while InProgress or Paused; the status is unchanged. Values
// outside [0, effective max] are rejected with QuantityOutOfRange and never
// clamped (that policy belongs to FinishAt alone). Quantity tracking must
// not be disabled at the location.
func (o *Order) UpdateQuantityAt(loc *location.Location, completedQuantity int) error {
	if err := loc.Validate(); err != nil {
		return err
	}

	p, err := o.ProgressAt(loc.ID())
	if err != nil {
		return err
	}

	if !p.status.CanTrackQuantity() {
		return errs.NewInvalidTransitionError("update quantity", p.status.String())
	}
	if loc.NoCount() {
		return errs.NewValueIsInvalidErrorWithCause("completedQuantity",
			fmt.Errorf("quantity tracking is disabled at location %s", loc.Name()))
	}

	maxQuantity := loc.EffectiveQuantity(o.totalQuantity)
	if completedQuantity < 0 || completedQuantity > maxQuantity {
		return errs.NewQuantityOutOfRangeError("completedQuantity", completedQuantity, maxQuantity)
	}

	p.completedQuantity = completedQuantity
	return nil
}

// PlaceInQueueAt overwrites the queue position of an already queued row.
// Used by queue renumbering; valid only while InQueue.
func (o *Order) PlaceInQueueAt(locationID kernel.UUID, position int) error {
	if position <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("queuePosition",
			fmt.Errorf("%d is not greater than 0", position))
	}

	p, err := o.ProgressAt(locationID)
	if err != nil {
		return err
	}
	if p.status != InQueue {
		return errs.NewInvalidTransitionError("reorder", p.status.String())
	}

	p.queuePosition = &position
	return nil
}

// SetQueuePosition admits the order into the global queue at the given
// position. Position must be positive.
func (o *Order) SetQueuePosition(position int) error {
	if position <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("globalQueuePosition",
			fmt.Errorf("%d is not greater than 0", position))
	}
	o.queuePosition = &position
	return nil
}

// MarkRush sets the rush priority flag. The rush timestamp is recorded on
// the first call and preserved on repeats, so re-marking never moves the
// order behind later rushes.
func (o *Order) MarkRush(now time.Time) {
	if o.rush {
		return
	}
	o.rush = true
	rushSetAt := now
	o.rushSetAt = &rushSetAt
}

// ClearRush removes the rush priority flag.
func (o *Order) ClearRush() {
	o.rush = false
	o.rushSetAt = nil
}

// Ship records the cumulative shipped quantity and derives the shipped /
// partially-shipped flags. Values outside [0, totalQuantity] are rejected
// with QuantityOutOfRange.
func (o *Order) Ship(cumulativeQuantity int) error {
	if cumulativeQuantity < 0 || cumulativeQuantity > o.totalQuantity {
		return errs.NewQuantityOutOfRangeError("shippedQuantity", cumulativeQuantity, o.totalQuantity)
	}

	o.shippedQuantity = cumulativeQuantity
	o.isShipped = cumulativeQuantity == o.totalQuantity
	o.isPartiallyShipped = cumulativeQuantity > 0 && cumulativeQuantity < o.totalQuantity
	return nil
}

// refreshFinished recomputes the order-level finished flag from the
// progress rows.
func (o *Order) refreshFinished() {
	for _, p := range o.progress {
		if p.status != Done {
			o.isFinished = false
			return
		}
	}
	o.isFinished = true
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("number")
	}
	o.number = number
	return nil
}

func (o *Order) setTotalQuantity(totalQuantity int) error {
	if totalQuantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("totalQuantity",
			fmt.Errorf("%d is not greater than 0", totalQuantity))
	}
	o.totalQuantity = totalQuantity
	return nil
}

func (o *Order) setSelectedLocations(locationIDs []kernel.UUID) error {
	if len(locationIDs) == 0 {
		return errs.NewValueIsRequiredError("selectedLocationIds")
	}

	seen := make(map[kernel.UUID]struct{}, len(locationIDs))
	progress := make([]*LocationProgress, 0, len(locationIDs))
	for _, locationID := range locationIDs {
		if _, ok := seen[locationID]; ok {
			return errs.NewValueIsInvalidErrorWithCause("selectedLocationIds",
				fmt.Errorf("location %s is selected twice", locationID))
		}
		seen[locationID] = struct{}{}

		p, err := newLocationProgress(locationID)
		if err != nil {
			return err
		}
		progress = append(progress, p)
	}

	o.progress = progress
	return nil
}
