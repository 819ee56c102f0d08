package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/event"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/pkg/kafka"
)

// Topic carrying every credit domain event.
const creditEventsTopic = "credit.events"

// KafkaEventPublisher implements port.EventPublisher over a Kafka producer.
// Events are JSON-encoded and keyed by aggregate ID so all events of one
// loan land on the same partition, in order.
type KafkaEventPublisher struct {
	producer *kafka.Producer
	logger   *slog.Logger
}

// NewKafkaEventPublisher creates a publisher writing to the credit events
// topic on the given brokers.
func NewKafkaEventPublisher(brokers []string, logger *slog.Logger) *KafkaEventPublisher {
	return &KafkaEventPublisher{
		producer: kafka.NewProducer(brokers, creditEventsTopic),
		logger:   logger,
	}
}

// Publish sends the events to the credit events topic.
func (p *KafkaEventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
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
			Key:   []byte(evt.AggregateID()),
			Value: payload,
			Headers: map[string]string{
				"event_id":   evt.EventID(),
				"event_type": evt.EventType(),
			},
		})
	}

	if err := p.producer.Publish(ctx, messages...); err != nil {
		return err
	}
	p.logger.Debug("domain events published", "topic", creditEventsTopic, "count", len(messages))
	return nil
}

// Close flushes and closes the underlying producer.
func (p *KafkaEventPublisher) Close() error {
	return p.producer.Close()
}
