package ports

import (
	"context"

	"shopfloor/internal/core/domain/model/kernel"
)

// Event types published to the notification sink.
const (
	EventOrderCreated     = "order.created"
	EventLocationQueued   = "order.location.queued"
	EventLocationStarted  = "order.location.started"
	EventLocationPaused   = "order.location.paused"
	EventLocationFinished = "order.location.finished"
	EventOrderFinished    = "order.finished"
	EventOrderShipped     = "order.shipped"
	EventOrderRush        = "order.rush"
	EventHelpRequested    = "order.help_requested"
)

// Notifier publishes order lifecycle events to external collaborators.
//
// Notify is fire-and-forget: implementations log and swallow delivery
// failures. Handlers call it after the transaction commits, never inside
// it. locationID is nil for order-level events.
type Notifier interface {
	Notify(ctx context.Context, orderID kernel.UUID, locationID *kernel.UUID, eventType string)
}
