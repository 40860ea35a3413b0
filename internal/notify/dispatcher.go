package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Golffzza/wellness-server/internal/domain"
)

const publishTimeout = 5 * time.Second

// AMQPDispatcher publishes booking confirmations to a topic exchange. Notify
// is best-effort: publish failures are logged and dropped, never surfaced to
// the reservation path.
type AMQPDispatcher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	logger   *log.Logger
}

func NewAMQPDispatcher(url, exchange string, logger *log.Logger) (*AMQPDispatcher, error) {
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
	return &AMQPDispatcher{conn: conn, ch: ch, exchange: exchange, logger: logger}, nil
}

func (d *AMQPDispatcher) Notify(userID string, b domain.Booking) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	event := NewEvent(uuid.NewString(), userID, b)
	body, err := json.Marshal(event)
	if err != nil {
		d.logger.Printf("WARN: notify booking=%d: marshal event: %v", b.ID, err)
		return
	}

	err = d.ch.PublishWithContext(ctx, d.exchange, RoutingKeyBookingConfirmed, false, false, amqp.Publishing{
		ContentType: "application/json",
		MessageId:   event.MessageID,
		Body:        body,
	})
	if err != nil {
		d.logger.Printf("WARN: notify booking=%d: publish: %v", b.ID, err)
	}
}

func (d *AMQPDispatcher) Close() error {
	if d.ch != nil {
		_ = d.ch.Close()
	}
	if d.conn != nil {
		return d.conn.Close()
	}
	return nil
}

// LogDispatcher writes confirmations to the log. Used when no broker is
// configured.
type LogDispatcher struct {
	logger *log.Logger
}

func NewLogDispatcher(logger *log.Logger) *LogDispatcher {
	if logger == nil {
		logger = log.Default()
	}
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) Notify(userID string, b domain.Booking) {
	d.logger.Printf("booking confirmed user=%s id=%d date=%s time=%s", userID, b.ID, b.Date, b.Slot)
}
