// Package events publishes period lifecycle events to RabbitMQ so
// external consumers (notifiers, exporters) can react. Publishing is
// best-effort: the ledger write has already committed by the time an
// event goes out, so failures are logged, never propagated.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
)

const (
	// PeriodClosed is emitted after a period transitions open -> closed.
	PeriodClosed = "period.closed"
	// PeriodSettled is emitted after a period transitions closed -> settled.
	PeriodSettled = "period.settled"
)

// PeriodEvent is the JSON body of a period lifecycle message.
type PeriodEvent struct {
	MessageID  string `json:"message_id"`
	Event      string `json:"event"`
	PeriodID   int64  `json:"period_id"`
	GroupID    int64  `json:"group_id"`
	OccurredAt int64  `json:"occurred_at"`
}

// Publisher publishes period events on a durable direct exchange.
// A nil Publisher is valid and drops everything, so callers never
// branch on whether messaging is configured.
type Publisher struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
}

// NewPublisher connects to RabbitMQ and declares the exchange, queue
// and binding. Returns nil (and no error) when url is empty.
func NewPublisher(url, exchangeName, queueName string) (*Publisher, error) {
	if url == "" {
		return nil, nil
	}

	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	p := &Publisher{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
	}
	if err := p.setup(); err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to set up exchange and queue: %w", err)
	}
	return p, nil
}

func (p *Publisher) setup() error {
	err := p.channel.ExchangeDeclare(
		p.exchangeName,
		"direct",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = p.channel.QueueDeclare(
		p.queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := p.channel.QueueBind(p.queueName, p.queueName, p.exchangeName, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}
	return nil
}

// PublishPeriodEvent emits one period lifecycle message. Errors are
// logged and swallowed.
func (p *Publisher) PublishPeriodEvent(ctx context.Context, event string, periodID, groupID int64) {
	if p == nil {
		return
	}

	msg := PeriodEvent{
		MessageID:  uuid.New().String(),
		Event:      event,
		PeriodID:   periodID,
		GroupID:    groupID,
		OccurredAt: time.Now().Unix(),
	}
	body, err := json.Marshal(msg)
	if err != nil {
		slog.Error("Failed to marshal period event", "event", event, "period_id", periodID, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchangeName,
		p.queueName,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    msg.MessageID,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		slog.Error("Failed to publish period event", "event", event, "period_id", periodID, "error", err)
		return
	}

	slog.Info("Published period event",
		"event", event,
		"period_id", periodID,
		"exchange", p.exchangeName,
		"queue", p.queueName,
	)
}

// Close releases the channel and connection.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
