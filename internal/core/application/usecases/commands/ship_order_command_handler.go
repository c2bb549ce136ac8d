package commands

import (
	"context"
	"fmt"

	"shopfloor/internal/core/ports"
)

// ShipOrderCommandHandler handles shipment recording. The upper bound on
// the cumulative quantity is the order's total; the aggregate enforces it.
type ShipOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	effects    sideEffects
}

// NewShipOrderCommandHandler creates a handler for shipment recording.
func NewShipOrderCommandHandler(
	uowFactory OrderUoWFactory,
	auditLog ports.AuditLog,
	notifier ports.Notifier,
) ShipOrderCommandHandler {
	return ShipOrderCommandHandler{
		uowFactory: uowFactory,
		effects:    newSideEffects(auditLog, notifier, nil),
	}
}

// Handle processes the shipment.
func (h *ShipOrderCommandHandler) Handle(ctx context.Context, cmd ShipOrderCommand) error {
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

	if err = ord.Ship(cmd.ShippedQuantity()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.effects.record(ctx, ord.ID(), nil, nil, "ship",
		fmt.Sprintf("shipped %d of %d", ord.ShippedQuantity(), ord.TotalQuantity()),
		ports.EventOrderShipped)

	return nil
}
