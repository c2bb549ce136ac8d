package commands

import (
	"context"

	"shopfloor/internal/core/ports"
)

// RequestHelpCommandHandler handles operator help requests. The order is
// loaded only to confirm it exists and passes through the location; the
// request itself lands in the audit trail and on the notification topic.
type RequestHelpCommandHandler struct {
	uowFactory OrderUoWFactory
	effects    sideEffects
}

// NewRequestHelpCommandHandler creates a handler for help requests.
func NewRequestHelpCommandHandler(
	uowFactory OrderUoWFactory,
	auditLog ports.AuditLog,
	notifier ports.Notifier,
) RequestHelpCommandHandler {
	return RequestHelpCommandHandler{
		uowFactory: uowFactory,
		effects:    newSideEffects(auditLog, notifier, nil),
	}
}

// Handle processes the help request.
func (h *RequestHelpCommandHandler) Handle(ctx context.Context, cmd RequestHelpCommand) error {
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

	ord, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if _, err = ord.ProgressAt(cmd.LocationID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	locID := cmd.LocationID()
	var userID *string
	if cmd.UserID() != "" {
		uid := cmd.UserID()
		userID = &uid
	}
	h.effects.record(ctx, ord.ID(), &locID, userID, "request_help", cmd.Message(),
		ports.EventHelpRequested)

	return nil
}
