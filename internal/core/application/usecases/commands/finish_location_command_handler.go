package commands

import (
	"context"
	"fmt"
	"time"

	"shopfloor/internal/core/domain/services"
	"shopfloor/internal/core/ports"
	"shopfloor/internal/pkg/errs"
)

// FinishLocationCommandHandler handles completing an order at a location.
// Finishing can unblock downstream tiers, so auto-admission runs before
// committing. When the last selected location finishes, the whole order is
// marked finished and an order-level event is published.
type FinishLocationCommandHandler struct {
	uowFactory UoWFactory
	admission  services.AdmissionService
	effects    sideEffects
}

// NewFinishLocationCommandHandler creates a handler for finishing location work.
func NewFinishLocationCommandHandler(
	uowFactory UoWFactory,
	auditLog ports.AuditLog,
	notifier ports.Notifier,
	cache ports.QueueBoardCache,
) FinishLocationCommandHandler {
	return FinishLocationCommandHandler{
		uowFactory: uowFactory,
		admission:  services.NewAdmissionService(),
		effects:    newSideEffects(auditLog, notifier, cache),
	}
}

// Handle processes the finish command. Exactly one of two concurrent
// finishes on the same row succeeds: the loser fails the version check
// with ConcurrencyConflict, or reloads a Done row and gets
// InvalidTransition.
func (h *FinishLocationCommandHandler) Handle(ctx context.Context, cmd FinishLocationCommand) error {
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

	if err = ord.FinishAt(target, cmd.CompletedQuantity(), time.Now()); err != nil {
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

	progress, _ := ord.ProgressAt(cmd.LocationID())
	locID := cmd.LocationID()
	h.effects.record(ctx, ord.ID(), &locID, nil, "finish",
		fmt.Sprintf("finished with quantity %d", progress.CompletedQuantity()),
		ports.EventLocationFinished)
	h.effects.invalidate(ctx, locID)
	for _, admittedID := range admitted {
		aID := admittedID
		h.effects.record(ctx, ord.ID(), &aID, nil, "enqueue", "auto-admitted to location queue",
			ports.EventLocationQueued)
		h.effects.invalidate(ctx, aID)
	}
	if ord.IsFinished() {
		h.effects.record(ctx, ord.ID(), nil, nil, "finish_order", "all locations finished",
			ports.EventOrderFinished)
	}

	return nil
}
