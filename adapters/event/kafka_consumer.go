package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/tumai/space-api/internal/config"
	"github.com/tumai/space-api/pkg/logger"
)

const (
	profileEventsGroupID = "profile-events-processor"
	maxHandleAttempts    = 3
	defaultRetryBackoff  = 2 * time.Second
)

type ProfileEventHandler func(ctx context.Context, payload ProfileEventPayload) error

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaConsumer struct {
	reader       messageReader
	logger       logger.Logger
	retryBackoff time.Duration
}

func NewKafkaConsumer(cfg config.Config, log logger.Logger) (*KafkaConsumer, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    TopicProfileEvents,
		GroupID:  profileEventsGroupID,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	return &KafkaConsumer{reader: reader, logger: log, retryBackoff: defaultRetryBackoff}, nil
}

// Run feeds profile events to handle until ctx is cancelled. Undecodable
// messages are committed and skipped. A failing handler is retried up to
// maxHandleAttempts times with a linear backoff; after that the message is
// logged as dropped and committed so the partition keeps moving.
func (c *KafkaConsumer) Run(ctx context.Context, handle ProfileEventHandler) error {
	c.logger.Info("Worker listening", zap.String("topic", TopicProfileEvents))
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return fmt.Errorf("fetch profile event: %w", err)
		}

		var payload ProfileEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			c.logger.Warn("Skipping undecodable profile event", zap.Int64("offset", msg.Offset), zap.Error(err))
			c.commit(ctx, msg)
			continue
		}

		if err := c.handleWithRetry(ctx, handle, payload); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.Error("Dropping profile event after retries", err,
				zap.Int64("offset", msg.Offset),
				zap.String("event_type", string(payload.EventType)),
				zap.Int64("profile_id", payload.ProfileID))
		}
		c.commit(ctx, msg)
	}
}

func (c *KafkaConsumer) handleWithRetry(ctx context.Context, handle ProfileEventHandler, payload ProfileEventPayload) error {
	var err error
	for attempt := 1; attempt <= maxHandleAttempts; attempt++ {
		if err = handle(ctx, payload); err == nil {
			return nil
		}
		c.logger.Warn("Profile event handler failed",
			zap.Int("attempt", attempt), zap.Int64("profile_id", payload.ProfileID), zap.Error(err))
		if attempt == maxHandleAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * c.retryBackoff):
		}
	}
	return err
}

func (c *KafkaConsumer) commit(ctx context.Context, msg kafka.Message) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		c.logger.Error("Failed to commit profile event", err, zap.Int64("offset", msg.Offset))
	}
}

func (c *KafkaConsumer) Close() {
	if err := c.reader.Close(); err != nil {
		c.logger.Error("Failed to close Kafka reader", err)
	}
}
