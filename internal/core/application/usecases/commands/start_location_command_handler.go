package commands

import (
	"context"
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/location"
	"shopfloor/internal/core/domain/services"
	"shopfloor/internal/core/ports"
	"shopfloor/internal/pkg/errs"
)

// StartLocationCommandHandler handles starting work on an order at a
// location.
//
// The eligibility gates are re-checked inside the transaction: explicit
// starts obey the same rules as auto-admission, so a blocked row cannot be
// started by hammering the start button. Starting can unblock downstream
// tiers, so auto-admission runs before committing.
type StartLocationCommandHandler struct {
	uowFactory UoWFactory
	checker    services.EligibilityChecker
	admission  services.AdmissionService
	effects    sideEffects
}

// NewStartLocationCommandHandler creates a handler for starting location work.
func NewStartLocationCommandHandler(
	uowFactory UoWFactory,
	auditLog ports.AuditLog,
	notifier ports.Notifier,
	cache ports.QueueBoardCache,
) StartLocationCommandHandler {
	return StartLocationCommandHandler{
		uowFactory: uowFactory,
		checker:    services.NewEligibilityChecker(),
		admission:  services.NewAdmissionService(),
		effects:    newSideEffects(auditLog, notifier, cache),
	}
}

// Handle processes the start command. Returns Blocked when the eligibility
// gates fail, InvalidTransition when the row cannot start from its current
// status, and ConcurrencyConflict when a concurrent writer won.
func (h *StartLocationCommandHandler) Handle(ctx context.Context, cmd StartLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	ord, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	selected, err := uow.LocationRepository().GetByIDs(ctx, ord.SelectedLocationIDs())
	if err != nil {
		return err
	}
	target := findLocation(selected, cmd.LocationID())
	if target == nil {
		return errs.NewObjectNotFoundError("locationId", cmd.LocationID().String())
	}

	result, err := h.checker.Check(ord, target, selected)
	if err != nil {
		return err
	}
	if !result.Eligible {
		return errs.NewBlockedError(result.Reason)
	}

	if err = ord.StartAt(target, time.Now()); err != nil {
		return err
	}

	tails, err := queueTails(ctx, orderRepo, selected)
	if err != nil {
		return err
	}
	admitted, err := h.admission.Admit(ord, selected, tails)
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	locID := cmd.LocationID()
	h.effects.record(ctx, ord.ID(), &locID, nil, "start", "work started", ports.EventLocationStarted)
	h.effects.invalidate(ctx, locID)
	for _, admittedID := range admitted {
		aID := admittedID
		h.effects.record(ctx, ord.ID(), &aID, nil, "enqueue", "auto-admitted to location queue",
			ports.EventLocationQueued)
		h.effects.invalidate(ctx, aID)
	}

	return nil
}

// findLocation returns the location with the given ID, or nil.
func findLocation(locations []*location.Location, id kernel.UUID) *location.Location {
	for _, loc := range locations {
		if loc.ID().IsEqual(id) {
			return loc
		}
	}
	return nil
}
