// Package audit contains the immutable audit trail entry recorded for every
// order state change. Entries are append-only; nothing in the system updates
// or deletes them.
package audit

import (
	"errors"
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/errs"
)

// ErrEntryIsNotConstructed is returned when an Entry instance was not
// created through NewEntry.
var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

// Entry is one immutable audit record: which order changed, optionally at
// which location and by whom, what happened, and when.
type Entry struct {
	id         kernel.UUID
	orderID    kernel.UUID
	locationID *kernel.UUID
	userID     *string
	action     string
	details    string
	occurredAt time.Time

	isConstructed bool
}

// NewEntry creates an audit entry. LocationID and userID are optional:
// order-level actions (shipping, rush) carry no location, and background
// jobs carry no user.
func NewEntry(
	id kernel.UUID,
	orderID kernel.UUID,
	locationID *kernel.UUID,
	userID *string,
	action string,
	details string,
	occurredAt time.Time,
) (*Entry, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
	); err != nil {
		return nil, err
	}
	if action == "" {
		return nil, errs.NewValueIsRequiredError("action")
	}
	if locationID != nil {
		if err := locationID.Validate(); err != nil {
			return nil, err
		}
	}

	return &Entry{
		id:            id,
		orderID:       orderID,
		locationID:    locationID,
		userID:        userID,
		action:        action,
		details:       details,
		occurredAt:    occurredAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Entry instance was properly constructed.
func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() kernel.UUID {
	return e.id
}

// OrderID returns the order this entry describes.
func (e *Entry) OrderID() kernel.UUID {
	return e.orderID
}

// LocationID returns the location involved, or nil for order-level actions.
func (e *Entry) LocationID() *kernel.UUID {
	return e.locationID
}

// UserID returns the acting user, or nil for system actions.
func (e *Entry) UserID() *string {
	return e.userID
}

// Action returns the short action name, e.g. "start" or "finish".
func (e *Entry) Action() string {
	return e.action
}

// Details returns the free-form description of the change.
func (e *Entry) Details() string {
	return e.details
}

// OccurredAt returns when the change happened.
func (e *Entry) OccurredAt() time.Time {
	return e.occurredAt
}
