package services

import (
	"fmt"
	"sort"
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/errs"
)

// QueueEntry is a read projection of one queued order-location row, carrying
// exactly the fields the queue ordering depends on.
type QueueEntry struct {
	OrderID       kernel.UUID
	OrderNumber   string
	Rush          bool
	RushSetAt     *time.Time
	QueuePosition *int
	CreatedAt     time.Time
}

// QueueManager is a domain service owning the queue ordering rules for a
// single location.
//
// Ordering key, most significant first:
//  1. rush before non-rush
//  2. among rush rows, earlier rushSetAt first
//  3. explicit queue position ascending, rows without a position last
//  4. earlier createdAt first
//
// Rush rows ignore explicit positions entirely; reordering operates on the
// non-rush subset only and always leaves positions contiguous from 1.
type QueueManager struct{}

// NewQueueManager creates a new QueueManager instance.
func NewQueueManager() QueueManager {
	return QueueManager{}
}

// Sort returns the entries in display order. The sort is stable, so rows
// that compare equal keep their input order.
func (m QueueManager) Sort(entries []QueueEntry) []QueueEntry {
	sorted := make([]QueueEntry, len(entries))
	copy(sorted, entries)

	sort.SliceStable(sorted, func(i, j int) bool {
		return lessQueueEntry(sorted[i], sorted[j])
	})
	return sorted
}

// Placement is one (order, position) pair produced by Reorder. The caller
// persists every placement so the stored positions stay contiguous.
type Placement struct {
	OrderID  kernel.UUID
	Position int
}

// Reorder moves the given order to newPosition within the location's
// non-rush queue and renumbers the whole non-rush subset 1..K.
//
// Rush rows cannot be reordered: their place is fixed by the rush
// timestamp. newPosition values past the end of the non-rush subset are
// clamped to the last slot.
func (m QueueManager) Reorder(
	entries []QueueEntry, orderID kernel.UUID, newPosition int,
) ([]Placement, error) {
	if newPosition < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("newPosition",
			fmt.Errorf("%d is not greater than 0", newPosition))
	}

	sorted := m.Sort(entries)

	nonRush := make([]QueueEntry, 0, len(sorted))
	targetIndex := -1
	for _, e := range sorted {
		if e.Rush {
			if e.OrderID.IsEqual(orderID) {
				return nil, errs.NewValueIsInvalidErrorWithCause("orderId",
					fmt.Errorf("order %s is a rush order and cannot be reordered", e.OrderNumber))
			}
			continue
		}
		if e.OrderID.IsEqual(orderID) {
			targetIndex = len(nonRush)
		}
		nonRush = append(nonRush, e)
	}
	if targetIndex == -1 {
		return nil, errs.NewObjectNotFoundError("orderId", orderID.String())
	}

	if newPosition > len(nonRush) {
		newPosition = len(nonRush)
	}

	target := nonRush[targetIndex]
	nonRush = append(nonRush[:targetIndex], nonRush[targetIndex+1:]...)
	insertAt := newPosition - 1
	nonRush = append(nonRush[:insertAt], append([]QueueEntry{target}, nonRush[insertAt:]...)...)

	placements := make([]Placement, 0, len(nonRush))
	for i, e := range nonRush {
		placements = append(placements, Placement{OrderID: e.OrderID, Position: i + 1})
	}
	return placements, nil
}

func lessQueueEntry(a, b QueueEntry) bool {
	if a.Rush != b.Rush {
		return a.Rush
	}
	if a.Rush {
		if !timePtrEqual(a.RushSetAt, b.RushSetAt) {
			return timePtrBefore(a.RushSetAt, b.RushSetAt)
		}
		return a.CreatedAt.Before(b.CreatedAt)
	}
	if !intPtrEqual(a.QueuePosition, b.QueuePosition) {
		return intPtrLess(a.QueuePosition, b.QueuePosition)
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// timePtrBefore orders non-nil timestamps ascending, nil last.
func timePtrBefore(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.Before(*b)
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// intPtrLess orders non-nil positions ascending, nil last.
func intPtrLess(a, b *int) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return *a < *b
}
