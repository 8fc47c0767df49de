package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Light-700/Nidhi-Rakshak/internal/domain/event"
	"github.com/Light-700/Nidhi-Rakshak/pkg/kafka"
)

// KafkaPublisher implements port.EventPublisher on top of the shared Kafka
// producer. Events are keyed by identifier so all events for one profile
// land on the same partition, preserving their order.
type KafkaPublisher struct {
	producer *kafka.Producer
	topic    string
	logger   *slog.Logger
}

// NewKafkaPublisher creates a Kafka-backed event publisher.
func NewKafkaPublisher(producer *kafka.Producer, topic string, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// Publish sends domain events to the configured topic.
func (p *KafkaPublisher) Publish(ctx context.Context, events ...event.Event) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(events))
	for _, evt := range events {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}
		messages = append(messages, kafka.Message{
			Key:   []byte(evt.Key()),
			Value: payload,
			Headers: map[string]string{
				"event_type": evt.EventType(),
			},
		})

		p.logger.Debug("publishing event",
			slog.String("event_type", evt.EventType()),
			slog.String("identifier", evt.Key()),
			slog.String("topic", p.topic),
		)
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("publish %d events: %w", len(messages), err)
	}
	return nil
}
