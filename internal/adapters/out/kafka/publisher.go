// Package kafka publishes order status changes to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"valet/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Config struct {
	Brokers []string
	Topic   string
}

// messageWriter is the subset of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// StatusChangedMessage is the JSON payload written for every status change.
type StatusChangedMessage struct {
	OrderID    string    `json:"orderId"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	ToLabel    string    `json:"toLabel"`
	OccurredAt time.Time `json:"occurredAt"`
}

// StatusPublisher implements ports.StatusChangeNotifier. Messages are keyed
// by order id so every change of one order lands on the same partition.
type StatusPublisher struct {
	writer messageWriter
	topic  string
	logger *zap.Logger
}

// NewStatusPublisher creates a publisher writing to cfg.Topic.
func NewStatusPublisher(cfg Config, logger *zap.Logger) *StatusPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		MaxAttempts:            5,
		BatchTimeout:           10 * time.Millisecond,
		ReadTimeout:            10 * time.Second,
		WriteTimeout:           10 * time.Second,
		AllowAutoTopicCreation: true,
	}
	return newStatusPublisher(w, cfg.Topic, logger)
}

func newStatusPublisher(w messageWriter, topic string, logger *zap.Logger) *StatusPublisher {
	return &StatusPublisher{
		writer: w,
		topic:  topic,
		logger: logger.With(zap.String("component", "kafka_status_publisher")),
	}
}

// Notify writes event to Kafka. Failures are logged and otherwise ignored.
func (p *StatusPublisher) Notify(ctx context.Context, event order.StatusChanged) {
	if err := p.publish(ctx, event); err != nil {
		p.logger.Error("failed to publish status change",
			zap.String("order_id", event.OrderID.String()),
			zap.Stringer("to", event.To),
			zap.Error(err),
		)
	}
}

func (p *StatusPublisher) publish(ctx context.Context, event order.StatusChanged) error {
	value, err := json.Marshal(StatusChangedMessage{
		OrderID:    event.OrderID.String(),
		From:       event.From.String(),
		To:         event.To.String(),
		ToLabel:    event.To.Label(),
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID.String()),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("failed to write message to %s: %w", p.topic, err)
	}
	return nil
}

func (p *StatusPublisher) Close() error {
	return p.writer.Close()
}
