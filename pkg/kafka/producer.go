package kafka

import (
	"context"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// Message is a single record to be written to the producer's topic.
type Message struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// Producer writes messages to a single Kafka topic. Keys are hashed to
// partitions, so records sharing a key keep their relative order. Safe for
// concurrent use.
type Producer struct {
	writer *kafkago.Writer
}

// NewProducer returns a producer bound to topic on the given brokers.
// Writes wait for acknowledgement from all in-sync replicas.
func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		writer: &kafkago.Writer{
			Addr:         kafkago.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafkago.Hash{},
			BatchTimeout: 20 * time.Millisecond,
			RequiredAcks: kafkago.RequireAll,
		},
	}
}

// Topic reports the topic this producer writes to.
func (p *Producer) Topic() string { return p.writer.Topic }

// Publish writes the messages as a single batch.
func (p *Producer) Publish(ctx context.Context, messages ...Message) error {
	records := make([]kafkago.Message, len(messages))
	for i, m := range messages {
		headers := make([]kafkago.Header, 0, len(m.Headers))
		for k, v := range m.Headers {
			headers = append(headers, kafkago.Header{Key: k, Value: []byte(v)})
		}
		records[i] = kafkago.Message{Key: m.Key, Value: m.Value, Headers: headers}
	}
	if err := p.writer.WriteMessages(ctx, records...); err != nil {
		return fmt.Errorf("kafka publish to %s: %w", p.writer.Topic, err)
	}
	return nil
}

// Close flushes pending writes and releases the underlying connections.
func (p *Producer) Close() error {
	return p.writer.Close()
}
