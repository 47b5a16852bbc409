// Package kafka delivers committed domain events to the message bus.
// Events are serialized as JSON and keyed by the order id so all events of
// one order land on the same partition, preserving their relative order.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
)

// Publisher implements ports.EventPublisher on top of a kafka-go writer.
type Publisher struct {
	writer *kafka.Writer
	topic  string
}

// NewPublisher creates a publisher writing to the given topic.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
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

// Publish serializes the event and writes it to the bus. The event name
// travels in a message header so consumers can route without decoding the
// payload.
func (p *Publisher) Publish(ctx context.Context, event order.DomainEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.EventName(), err)
	}

	msg := kafka.Message{
		Key:   []byte(event.AggregateID().String()),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(event.EventName())},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s event: %w", event.EventName(), err)
	}

	return nil
}

// Close flushes pending messages and releases the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
