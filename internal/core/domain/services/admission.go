package services

import (
	"sort"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/location"
	"shopfloor/internal/core/domain/model/order"
)

// AdmissionService is a domain service that auto-enqueues an order at every
// selected location that has become eligible.
//
// After any mutation that can unlock downstream work (global queue
// admission, a location starting, a location finishing), the application
// layer calls Admit. Each still-NotStarted selected location that passes
// the eligibility check and does not opt out of auto-queueing is enqueued
// at the tail of its location queue. Because enqueueing moves the row out
// of NotStarted, one admission can unlock the next tier, so the service
// loops until no further row qualifies.
type AdmissionService struct {
	checker EligibilityChecker
}

// NewAdmissionService creates a new AdmissionService instance.
func NewAdmissionService() AdmissionService {
	return AdmissionService{checker: NewEligibilityChecker()}
}

// Admit enqueues every newly eligible order-location row and returns the
// IDs of the locations that were admitted, in admission order.
//
// selected must contain the Location for every ID the order was created
// with. tailPositions maps each location to the highest queue position
// currently in use there (0 for an empty queue); Admit tracks its own
// increments, so one call can admit several rows to the same queue.
func (s AdmissionService) Admit(
	ord *order.Order,
	selected []*location.Location,
	tailPositions map[kernel.UUID]int,
) ([]kernel.UUID, error) {
	if err := ord.Validate(); err != nil {
		return nil, err
	}

	byTier := make([]*location.Location, len(selected))
	copy(byTier, selected)
	sort.SliceStable(byTier, func(i, j int) bool {
		return byTier[i].UsedOrder() < byTier[j].UsedOrder()
	})

	tails := make(map[kernel.UUID]int, len(tailPositions))
	for id, pos := range tailPositions {
		tails[id] = pos
	}

	var admitted []kernel.UUID
	for {
		progressed := false
		for _, loc := range byTier {
			if loc.SkipAutoQueue() {
				continue
			}
			if ord.StatusAt(loc.ID()) != order.NotStarted {
				continue
			}

			result, err := s.checker.Check(ord, loc, selected)
			if err != nil {
				return nil, err
			}
			if !result.Eligible {
				continue
			}

			position := tails[loc.ID()] + 1
			if err := ord.EnqueueAt(loc, position); err != nil {
				return nil, err
			}
			tails[loc.ID()] = position
			admitted = append(admitted, loc.ID())
			progressed = true
		}
		if !progressed {
			return admitted, nil
		}
	}
}
