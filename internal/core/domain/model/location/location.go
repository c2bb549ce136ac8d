// Package location contains the production-stage reference data. Locations
// are admin-managed and static from the workflow engine's point of view:
// they define the stage sequence (usedOrder), the global-queue entry gate
// (isPrimary), queue admission behavior (skipAutoQueue), and how an order's
// nominal quantity maps onto the stage (countMultiplier, noCount).
package location

import (
	"errors"
	"fmt"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrLocationIsNotConstructed is returned when a Location instance was not
// created through NewLocation or RestoreLocation.
var ErrLocationIsNotConstructed = errors.New("Location must be created via NewLocation constructor")

// Location represents one production stage.
//
// Invariants:
//   - Name is unique and non-empty
//   - UsedOrder is positive; equal values denote parallel stages
//   - CountMultiplier is strictly positive
type Location struct {
	id              kernel.UUID
	name            string
	usedOrder       int
	isPrimary       bool
	skipAutoQueue   bool
	countMultiplier decimal.Decimal
	noCount         bool

	isConstructed bool
}

// NewLocation creates a validated Location.
//
// Parameters:
//   - id: unique identifier
//   - name: unique human-readable stage name (required)
//   - usedOrder: workflow precedence, must be positive
//   - isPrimary: whether this stage gates global-queue admission
//   - skipAutoQueue: bypass automatic enqueue; work starts via explicit start
//   - countMultiplier: scales an order's nominal quantity into this stage's
//     effective tracked quantity, must be > 0
//   - noCount: disables quantity tracking at this stage
func NewLocation(
	id kernel.UUID,
	name string,
	usedOrder int,
	isPrimary bool,
	skipAutoQueue bool,
	countMultiplier decimal.Decimal,
	noCount bool,
) (*Location, error) {
	loc := &Location{
		isPrimary:     isPrimary,
		skipAutoQueue: skipAutoQueue,
		noCount:       noCount,
		isConstructed: true,
	}

	if err := errors.Join(
		loc.setID(id),
		loc.setName(name),
		loc.setUsedOrder(usedOrder),
		loc.setCountMultiplier(countMultiplier),
	); err != nil {
		return nil, err
	}

	return loc, nil
}

// RestoreLocation reconstructs a Location from persistence. It runs the same
// validation as NewLocation.
func RestoreLocation(
	id kernel.UUID,
	name string,
	usedOrder int,
	isPrimary bool,
	skipAutoQueue bool,
	countMultiplier decimal.Decimal,
	noCount bool,
) (*Location, error) {
	return NewLocation(id, name, usedOrder, isPrimary, skipAutoQueue, countMultiplier, noCount)
}

// Validate ensures the Location was created via a constructor.
func (l *Location) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLocationIsNotConstructed
	}
	return nil
}

// IsEqual compares locations by identifier.
func (l *Location) IsEqual(other *Location) bool {
	return other != nil && l.id.IsEqual(other.id)
}

// ID returns the location's unique identifier.
func (l *Location) ID() kernel.UUID {
	return l.id
}

// Name returns the unique stage name.
func (l *Location) Name() string {
	return l.name
}

// UsedOrder returns the workflow precedence of this stage. Stages sharing a
// value run in parallel and never gate each other.
func (l *Location) UsedOrder() int {
	return l.usedOrder
}

// IsPrimary reports whether this stage gates global-queue admission.
func (l *Location) IsPrimary() bool {
	return l.isPrimary
}

// SkipAutoQueue reports whether automatic enqueue is bypassed for this
// stage. Orders stay not-started until an operator starts them directly.
func (l *Location) SkipAutoQueue() bool {
	return l.skipAutoQueue
}

// CountMultiplier returns the factor converting an order's nominal quantity
// into this stage's effective tracked quantity.
func (l *Location) CountMultiplier() decimal.Decimal {
	return l.countMultiplier
}

// NoCount reports whether quantity tracking is disabled at this stage.
func (l *Location) NoCount() bool {
	return l.noCount
}

// EffectiveQuantity converts an order's total quantity into the maximum
// completed quantity trackable at this stage: ceil(total × multiplier).
// Returns 0 for no-count stages.
func (l *Location) EffectiveQuantity(totalQuantity int) int {
	if l.noCount {
		return 0
	}
	return int(decimal.NewFromInt(int64(totalQuantity)).Mul(l.countMultiplier).Ceil().IntPart())
}

func (l *Location) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Location) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	l.name = name
	return nil
}

func (l *Location) setUsedOrder(usedOrder int) error {
	if usedOrder <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("usedOrder",
			fmt.Errorf("%d is not greater than 0", usedOrder))
	}
	l.usedOrder = usedOrder
	return nil
}

func (l *Location) setCountMultiplier(countMultiplier decimal.Decimal) error {
	if countMultiplier.LessThanOrEqual(decimal.Zero) {
		return errs.NewValueIsInvalidErrorWithCause("countMultiplier",
			fmt.Errorf("%s is not greater than 0", countMultiplier))
	}
	l.countMultiplier = countMultiplier
	return nil
}
