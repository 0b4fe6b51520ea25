package profile

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/tumai/space-api/adapters/event"
	"github.com/tumai/space-api/internal/application/service"
	"github.com/tumai/space-api/internal/domain/profile"
	"github.com/tumai/space-api/pkg/logger"
)

type DeleteProfileUseCase struct {
	profileRepo profile.Repository
	publisher   service.ProfileEventPublisher
	logger      logger.Logger
}

func NewDeleteProfileUseCase(repo profile.Repository, pub service.ProfileEventPublisher, log logger.Logger) *DeleteProfileUseCase {
	return &DeleteProfileUseCase{profileRepo: repo, publisher: pub, logger: log}
}

// Execute reports whether the profile existed. Memberships and social
// networks go with it.
func (uc *DeleteProfileUseCase) Execute(ctx context.Context, profileID int64) (bool, error) {
	ctx, span := tracer.Start(ctx, "DeleteProfile")
	defer span.End()
	span.SetAttributes(attribute.Int64("profile.id", profileID))

	deleted, err := uc.profileRepo.Delete(ctx, profileID)
	if err != nil {
		span.RecordError(err)
		return false, fmt.Errorf("delete profile failed: %w", err)
	}
	if deleted {
		uc.logger.Info("Profile deleted", zap.Int64("profile_id", profileID))
		publishAsync(uc.publisher, uc.logger, event.ProfileEventTypeDeleted, profileID)
	}
	return deleted, nil
}

func (uc *DeleteProfileUseCase) ExecuteBatch(ctx context.Context, profileIDs []int64) ([]int64, error) {
	ctx, span := tracer.Start(ctx, "DeleteProfiles")
	defer span.End()
	span.SetAttributes(attribute.Int("profile.count", len(profileIDs)))

	deleted, err := uc.profileRepo.DeleteBatch(ctx, profileIDs)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("delete profiles failed: %w", err)
	}
	for _, id := range deleted {
		publishAsync(uc.publisher, uc.logger, event.ProfileEventTypeDeleted, id)
	}
	return deleted, nil
}
