package service

import (
	"context"

	"github.com/tumai/space-api/adapters/event"
)

type ProfileEventPublisher interface {
	PublishProfileEvent(ctx context.Context, payload event.ProfileEventPayload) error
}
