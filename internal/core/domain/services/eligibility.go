package services

import (
	"fmt"

	"shopfloor/internal/core/domain/model/location"
	"shopfloor/internal/core/domain/model/order"
	"shopfloor/internal/pkg/errs"
)

// EligibilityResult is the outcome of a gating check. When Eligible is
// false, Reason carries a human-readable explanation for the upcoming /
// blocked dashboard view.
type EligibilityResult struct {
	Eligible bool
	Reason   string
}

// EligibilityChecker is a domain service deciding whether an order may
// begin work at a target location.
//
// Two gates apply:
//   - Entry gate: if the target is a primary location on the order's entry
//     tier (the minimum usedOrder among the order's selected locations),
//     the order must have been admitted to the global queue.
//   - Upstream gate: every selected location with a strictly lower
//     usedOrder than the target must have at least started (status not
//     NotStarted).
//
// Locations sharing the entry tier are parallel entry stages; each is
// gated independently and none blocks the others.
//
// Example usage:
//
//	checker := services.NewEligibilityChecker()
//	result, err := checker.Check(ord, cutting, selectedLocations)
//	if err != nil {
//	    return err
//	}
//	if !result.Eligible {
//	    // result.Reason explains which gate failed
//	}
type EligibilityChecker struct{}

// NewEligibilityChecker creates a new EligibilityChecker instance.
func NewEligibilityChecker() EligibilityChecker {
	return EligibilityChecker{}
}

// Check evaluates both gates for the order at the target location.
// selected must contain the Location for every ID the order was created
// with, target included.
func (c EligibilityChecker) Check(
	ord *order.Order, target *location.Location, selected []*location.Location,
) (EligibilityResult, error) {
	if err := ord.Validate(); err != nil {
		return EligibilityResult{}, err
	}
	if err := target.Validate(); err != nil {
		return EligibilityResult{}, err
	}
	if _, err := ord.ProgressAt(target.ID()); err != nil {
		return EligibilityResult{}, err
	}
	if len(selected) == 0 {
		return EligibilityResult{}, errs.NewValueIsRequiredError("selected")
	}

	entryTier := selected[0].UsedOrder()
	for _, loc := range selected {
		if err := loc.Validate(); err != nil {
			return EligibilityResult{}, err
		}
		if loc.UsedOrder() < entryTier {
			entryTier = loc.UsedOrder()
		}
	}

	if target.UsedOrder() == entryTier && target.IsPrimary() {
		pos := ord.QueuePosition()
		if pos == nil || *pos <= 0 {
			return EligibilityResult{
				Reason: fmt.Sprintf("order %s is not admitted to the global queue", ord.Number()),
			}, nil
		}
	}

	for _, loc := range selected {
		if loc.UsedOrder() >= target.UsedOrder() {
			continue
		}
		if ord.StatusAt(loc.ID()) == order.NotStarted {
			return EligibilityResult{
				Reason: fmt.Sprintf("waiting for upstream location %s to start", loc.Name()),
			}, nil
		}
	}

	return EligibilityResult{Eligible: true}, nil
}
