package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Golffzza/wellness-server/internal/notify"
)

const defaultPrefetch = 8

// Consumer reads confirmation events from the broker and hands each one to a
// Notifier. Delivery failure nacks the message back onto the queue; it never
// touches the reservation engine.
type Consumer struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	queue    string
	notifier Notifier
	logger   *log.Logger
}

func NewConsumer(url, exchange, queue string, n Notifier, logger *log.Logger) (*Consumer, error) {
	if logger == nil {
		logger = log.Default()
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	q, err := ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}
	if err := ch.QueueBind(q.Name, notify.RoutingKeyBookingConfirmed, exchange, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("bind queue: %w", err)
	}
	if err := ch.Qos(defaultPrefetch, 0, false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("set qos: %w", err)
	}
	return &Consumer{conn: conn, ch: ch, queue: q.Name, notifier: n, logger: logger}, nil
}

// Run blocks consuming deliveries until ctx is cancelled or the channel
// closes.
func (c *Consumer) Run(ctx context.Context) error {
	msgs, err := c.ch.ConsumeWithContext(ctx, c.queue, "notifier", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := c.handle(d); err != nil {
				c.logger.Printf("WARN: notify delivery failed key=%s: %v", d.RoutingKey, err)
				_ = d.Nack(false, true)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) handle(d amqp.Delivery) error {
	if d.RoutingKey != notify.RoutingKeyBookingConfirmed {
		c.logger.Printf("skip unknown routing key %s", d.RoutingKey)
		return nil
	}
	var ev notify.Event
	if err := json.Unmarshal(d.Body, &ev); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}
	return c.notifier.Send(ev.UserID, ConfirmationText(ev))
}

func (c *Consumer) Close() {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}
