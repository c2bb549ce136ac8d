// Package kafka publishes order lifecycle events for downstream consumers
// (dashboards, the office UI, reporting). Delivery is best effort: a broker
// outage is logged and swallowed, never surfaced to the command that
// produced the event.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"shopfloor/internal/core/domain/model/kernel"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// eventPayload is the JSON shape of one published event.
type eventPayload struct {
	OrderID    string  `json:"orderId"`
	LocationID *string `json:"locationId,omitempty"`
	EventType  string  `json:"eventType"`
	At         string  `json:"at"`
}

// Notifier implements the notification sink on a kafka-go writer. Messages
// are keyed by order ID so each order's events stay in one partition, in
// order.
type Notifier struct {
	writer *kafka.Writer
	log    *zap.Logger
}

// NewNotifier creates a notifier publishing to the given topic.
func NewNotifier(brokers []string, topic string, log *zap.Logger) *Notifier {
	return &Notifier{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
		log: log,
	}
}

// Notify publishes one event. Failures are logged and swallowed.
func (n *Notifier) Notify(
	ctx context.Context, orderID kernel.UUID, locationID *kernel.UUID, eventType string,
) {
	var locID *string
	if locationID != nil {
		s := locationID.String()
		locID = &s
	}

	payload, err := json.Marshal(eventPayload{
		OrderID:    orderID.String(),
		LocationID: locID,
		EventType:  eventType,
		At:         time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		n.log.Error("failed to encode event", zap.String("eventType", eventType), zap.Error(err))
		return
	}

	err = n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(orderID.String()),
		Value: payload,
	})
	if err != nil {
		n.log.Error("failed to publish event",
			zap.String("orderId", orderID.String()),
			zap.String("eventType", eventType),
			zap.Error(err))
	}
}

// Close flushes and closes the underlying writer.
func (n *Notifier) Close() error {
	return n.writer.Close()
}
