package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"fyyur/internal/logger"
	"fyyur/internal/models"
)

// MessageWriter is the part of *kafka.Writer the producer needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer streams directory change events to one topic.
type Producer struct {
	Writer   MessageWriter
	Topic    string
	MockMode bool
	Logger   *logger.Logger
}

func NewProducer(brokers []string, topic string, mockMode bool, log *logger.Logger) *Producer {
	p := &Producer{Topic: topic, MockMode: mockMode, Logger: log}
	if mockMode {
		return p
	}
	p.Writer = &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}
	return p
}

// Publish writes event keyed by its record, so one record's events stay
// ordered within a partition. In mock mode the event is only logged.
func (p *Producer) Publish(ctx context.Context, event models.ChangeEvent) error {
	msgBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", event.Type, err)
	}

	if p.MockMode || p.Writer == nil {
		p.Logger.LogKafka("MOCK", p.Topic, fmt.Sprintf("%s %s", event.Key(), msgBytes))
		return nil
	}

	err = p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Key()),
		Value: msgBytes,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
		Time: event.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("write %s event: %w", event.Type, err)
	}
	p.Logger.LogKafka("PUBLISH", p.Topic, fmt.Sprintf("%s %s", event.Type, event.Key()))
	return nil
}

func (p *Producer) Close() error {
	if p.Writer == nil {
		return nil
	}
	return p.Writer.Close()
}

// Nop discards every event; used when the change feed is disabled.
type Nop struct{}

func (Nop) Publish(context.Context, models.ChangeEvent) error { return nil }

func (Nop) Close() error { return nil }
