package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tumai/space-api/internal/config"
	"github.com/tumai/space-api/pkg/logger"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func TestPublishProfileEvent(t *testing.T) {
	w := &recordingWriter{}
	client := &KafkaProducerClient{ProfileEventsWriter: w, logger: logger.NewNopLogger()}

	err := client.PublishProfileEvent(context.Background(), ProfileEventPayload{
		EventType: ProfileEventTypeCreated,
		ProfileID: 42,
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "42", string(w.msgs[0].Key))

	var got ProfileEventPayload
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, ProfileEventTypeCreated, got.EventType)
	assert.Equal(t, int64(42), got.ProfileID)
	assert.False(t, got.OccurredAt.IsZero())
}

func TestPublishProfileEvent_WriterError(t *testing.T) {
	client := &KafkaProducerClient{ProfileEventsWriter: &recordingWriter{err: errors.New("broker down")}, logger: logger.NewNopLogger()}
	err := client.PublishProfileEvent(context.Background(), ProfileEventPayload{EventType: ProfileEventTypeDeleted, ProfileID: 1})
	assert.ErrorContains(t, err, "broker down")
}

func TestNewKafkaProducerClient_RequiresBrokers(t *testing.T) {
	_, err := NewKafkaProducerClient(config.Config{}, logger.NewNopLogger())
	assert.Error(t, err)
}
