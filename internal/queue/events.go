package queue

import (
	"context"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventsExchange = "restaurant.events"
	EventsQueue    = "restaurant.events.process"
	EventsDLQ      = "restaurant.events.dlq"
	EventsDeadRK   = "dead"

	RKOrderCreated   = "order.created"
	RKBookingCreated = "booking.created"
)

// Event is the envelope carried on the events exchange. Type matches the
// routing key so consumers can dispatch without inspecting delivery metadata.
type Event struct {
	Type      string  `json:"type"`
	OrderID   string  `json:"orderId,omitempty"`
	BookingID string  `json:"bookingId,omitempty"`
	EventType string  `json:"eventType,omitempty"`
	Total     float64 `json:"total,omitempty"`
	CreatedAt string  `json:"createdAt"`
}

// EnsureEventsTopology declares the events exchange, its worker queue, and a
// dead letter queue for messages that exhaust retries.
func EnsureEventsTopology(qc *Client) error {
	if qc == nil {
		return nil
	}

	if err := qc.EnsureExchange(EventsExchange, "topic"); err != nil {
		return err
	}

	if _, err := qc.EnsureQueue(EventsDLQ, nil); err != nil {
		return err
	}
	if err := qc.BindQueue(EventsDLQ, EventsExchange, EventsDeadRK); err != nil {
		return err
	}

	_, err := qc.EnsureQueue(EventsQueue, amqp.Table{
		"x-dead-letter-exchange":    EventsExchange,
		"x-dead-letter-routing-key": EventsDeadRK,
	})
	if err != nil {
		return err
	}
	return qc.BindQueue(EventsQueue, EventsExchange, "order.*")
}

// BindBookingEvents adds booking routing keys to the worker queue. Split out
// so deployments that only care about orders can skip it.
func BindBookingEvents(qc *Client) error {
	if qc == nil {
		return nil
	}
	return qc.BindQueue(EventsQueue, EventsExchange, "booking.*")
}

func PublishOrderCreated(ctx context.Context, qc *Client, orderID string, total float64) error {
	if qc == nil {
		return nil
	}
	return qc.PublishJSON(ctx, EventsExchange, RKOrderCreated, Event{
		Type:      RKOrderCreated,
		OrderID:   orderID,
		Total:     total,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

func PublishBookingCreated(ctx context.Context, qc *Client, bookingID string, eventType string) error {
	if qc == nil {
		return nil
	}
	return qc.PublishJSON(ctx, EventsExchange, RKBookingCreated, Event{
		Type:      RKBookingCreated,
		BookingID: bookingID,
		EventType: eventType,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
}
