package profile

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/tumai/space-api/adapters/event"
	"github.com/tumai/space-api/internal/application/service"
	"github.com/tumai/space-api/pkg/logger"
)

var tracer = otel.Tracer("profile_usecase")

// publishAsync fires a profile event without blocking the request. A nil
// publisher means events are disabled.
func publishAsync(pub service.ProfileEventPublisher, log logger.Logger, eventType event.ProfileEventType, profileID int64) {
	if pub == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := pub.PublishProfileEvent(ctx, event.ProfileEventPayload{
			EventType:  eventType,
			ProfileID:  profileID,
			OccurredAt: time.Now().UTC(),
		})
		if err != nil {
			log.Error("Failed to publish profile event", err,
				zap.String("event_type", string(eventType)), zap.Int64("profile_id", profileID))
		}
	}()
}
