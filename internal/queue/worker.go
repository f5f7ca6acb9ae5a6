package queue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"spiceroute-services/internal/jsonstore"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type HandlerFunc func(ctx context.Context, body []byte) error

// ConsumeWithRetry consumes a queue, requeueing failed messages with an
// incremented x-retry-count header until maxRetries, after which the message
// is dead lettered.
func (c *Client) ConsumeWithRetry(queue string, handler HandlerFunc, maxRetries int, retryDelay time.Duration) error {
	msgs, err := c.ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	for msg := range msgs {
		ctx := context.Background()
		if err := handler(ctx, msg.Body); err == nil {
			_ = msg.Ack(false)
			continue
		}

		retryCount := getRetryCount(msg.Headers)
		if retryCount >= maxRetries {
			_ = msg.Nack(false, false)
			continue
		}

		headers := msg.Headers
		if headers == nil {
			headers = amqp.Table{}
		}
		headers["x-retry-count"] = retryCount + 1

		time.Sleep(retryDelay)
		_ = c.ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
			ContentType: msg.ContentType,
			Body:        msg.Body,
			Headers:     headers,
			Timestamp:   time.Now(),
		})
		_ = msg.Ack(false)
	}

	return errors.New("consumer closed")
}

func getRetryCount(headers amqp.Table) int {
	if headers == nil {
		return 0
	}
	if v, ok := headers["x-retry-count"]; ok {
		switch t := v.(type) {
		case int32:
			return int(t)
		case int64:
			return int(t)
		case int:
			return t
		}
	}
	return 0
}

const analyticsFileName = "analytics_data.json"

// Local mirror of the analytics document. Waiters pass through untouched so
// the worker never has to understand their shape.
type analyticsDoc struct {
	Revenue revenueRollup   `json:"revenue"`
	Daily   []dailyRollup   `json:"daily"`
	Waiters json.RawMessage `json:"waiters,omitempty"`
}

type revenueRollup struct {
	Today     float64 `json:"today"`
	ThisWeek  float64 `json:"thisWeek"`
	ThisMonth float64 `json:"thisMonth"`
	Total     float64 `json:"total"`
}

type dailyRollup struct {
	Date    string  `json:"date"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// EventProcessor applies events from the worker queue to the analytics
// rollups. order.created bumps the revenue counters and the current day's
// bucket; booking.created is logged for the events team.
type EventProcessor struct {
	Store  *jsonstore.Store
	Logger *zap.Logger
}

func (p *EventProcessor) Handle(ctx context.Context, body []byte) error {
	var evt Event
	if err := json.Unmarshal(body, &evt); err != nil {
		return err
	}

	switch evt.Type {
	case RKOrderCreated:
		return p.applyOrderCreated(evt)
	case RKBookingCreated:
		p.Logger.Info("booking created",
			zap.String("bookingId", evt.BookingID),
			zap.String("eventType", evt.EventType))
		return nil
	default:
		p.Logger.Warn("unknown event", zap.String("type", evt.Type))
		return nil
	}
}

func (p *EventProcessor) applyOrderCreated(evt Event) error {
	var doc analyticsDoc
	if err := p.Store.Load(analyticsFileName, &doc); err != nil && !errors.Is(err, jsonstore.ErrNotFound) {
		return err
	}

	doc.Revenue.Today += evt.Total
	doc.Revenue.ThisWeek += evt.Total
	doc.Revenue.ThisMonth += evt.Total
	doc.Revenue.Total += evt.Total

	today := time.Now().UTC().Format("2006-01-02")
	found := false
	for i := range doc.Daily {
		if doc.Daily[i].Date == today {
			doc.Daily[i].Orders++
			doc.Daily[i].Revenue += evt.Total
			found = true
			break
		}
	}
	if !found {
		doc.Daily = append(doc.Daily, dailyRollup{Date: today, Orders: 1, Revenue: evt.Total})
	}

	if err := p.Store.Save(analyticsFileName, doc); err != nil {
		return err
	}

	p.Logger.Info("order applied to analytics",
		zap.String("orderId", evt.OrderID),
		zap.Float64("total", evt.Total))
	return nil
}
