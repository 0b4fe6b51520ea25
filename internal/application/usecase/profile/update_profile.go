package profile

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/tumai/space-api/adapters/event"
	"github.com/tumai/space-api/internal/application/service"
	"github.com/tumai/space-api/internal/domain/profile"
	"github.com/tumai/space-api/pkg/apperror"
	"github.com/tumai/space-api/pkg/logger"
)

type UpdateProfileUseCase struct {
	profileRepo profile.Repository
	publisher   service.ProfileEventPublisher
	logger      logger.Logger
	now         func() time.Time
}

func NewUpdateProfileUseCase(repo profile.Repository, pub service.ProfileEventPublisher, log logger.Logger) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{profileRepo: repo, publisher: pub, logger: log, now: time.Now}
}

type UpdateProfileInput struct {
	ProfileID int64
	Patch     profile.Patch
}

func (uc *UpdateProfileUseCase) Execute(ctx context.Context, input UpdateProfileInput) (*profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "UpdateProfile")
	defer span.End()
	span.SetAttributes(attribute.Int64("profile.id", input.ProfileID))

	p, err := uc.profileRepo.FindByID(ctx, input.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("update profile failed: %w", err)
	}

	p.Apply(input.Patch, uc.now().UTC())
	if err := p.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	if err := uc.profileRepo.Update(ctx, p); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("update profile failed: %w", err)
	}

	publishAsync(uc.publisher, uc.logger, event.ProfileEventTypeUpdated, p.ID)
	return p, nil
}
