package commands

import (
	"context"
	"fmt"
	"time"

	"shopfloor/internal/core/domain/model/order"
	"shopfloor/internal/core/domain/services"
	"shopfloor/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Creates the order with one NotStarted row per selected location, then
// runs auto-admission so queue-bypassing entry stages pick it up at once.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, auditLog, notifier, cache)
//	cmd, _ := NewCreateOrderCommand(orderID, "ORD-1042", 200, dueDate, locationIDs)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	admission  services.AdmissionService
	effects    sideEffects
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	auditLog ports.AuditLog,
	notifier ports.Notifier,
	cache ports.QueueBoardCache,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		admission:  services.NewAdmissionService(),
		effects:    newSideEffects(auditLog, notifier, cache),
	}
}

// Handle processes the order creation command.
// Resolves the selected locations, creates the aggregate, auto-admits any
// already eligible rows, and persists everything in one transaction.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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

	selected, err := uow.LocationRepository().GetByIDs(ctx, cmd.LocationIDs())
	if err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	ord, err := order.NewOrder(
		cmd.OrderID(), cmd.Number(), cmd.TotalQuantity(), cmd.DueDate(), cmd.LocationIDs(), time.Now())
	if err != nil {
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

	if err = orderRepo.Add(ctx, ord); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.effects.record(ctx, ord.ID(), nil, nil, "create",
		fmt.Sprintf("order %s created with %d locations", ord.Number(), len(selected)),
		ports.EventOrderCreated)
	for _, locationID := range admitted {
		locID := locationID
		h.effects.record(ctx, ord.ID(), &locID, nil, "enqueue", "auto-admitted to location queue",
			ports.EventLocationQueued)
		h.effects.invalidate(ctx, locID)
	}

	return nil
}
