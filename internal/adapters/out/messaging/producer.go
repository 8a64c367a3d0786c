// Package messaging publishes order status-change events to Kafka for
// downstream consumers (notifications, analytics). Delivery is best-effort:
// the action that produced an event never fails because publishing did.
package messaging

import (
	"context"
	"encoding/json"
	"time"

	"willowcommerce/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// Producer writes JSON-encoded domain events to a single Kafka topic.
// It implements ports.EventPublisher.
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer creates a Kafka producer for the given brokers and topic.
func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		topic: topic,
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           100 * time.Millisecond,
		},
	}
}

// Publish encodes the event as JSON and writes it keyed by the given key so
// events for one order land on the same partition in order.
func (p *Producer) Publish(ctx context.Context, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
	})
}

// Close flushes pending messages and releases the writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}

var _ ports.EventPublisher = (*Producer)(nil)
