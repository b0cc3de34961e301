package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/segmentio/kafka-go"

	"fyyur/internal/logger"
	"fyyur/internal/models"
)

// MessageReader is the part of *kafka.Reader the consumer needs.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// Consumer follows the change feed.
type Consumer struct {
	Reader MessageReader
	Logger *logger.Logger
}

func NewConsumer(brokers []string, topic, groupID string, log *logger.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6, // 10MB
	})
	return &Consumer{Reader: reader, Logger: log}
}

// Run hands every decoded event to handle until ctx is cancelled.
// Undecodable messages are logged and skipped; a handler error stops Run.
func (c *Consumer) Run(ctx context.Context, handle func(models.ChangeEvent) error) error {
	for {
		msg, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("read change event: %w", err)
		}

		var event models.ChangeEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.Logger.Warn("KAFKA", fmt.Sprintf("skip offset %d: %v", msg.Offset, err))
			continue
		}
		if err := handle(event); err != nil {
			return fmt.Errorf("handle %s: %w", event.Key(), err)
		}
	}
}

func (c *Consumer) Close() error {
	return c.Reader.Close()
}
