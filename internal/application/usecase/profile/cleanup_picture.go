package profile

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/tumai/space-api/adapters/event"
	"github.com/tumai/space-api/internal/application/service"
	"github.com/tumai/space-api/pkg/logger"
)

// CleanupPictureUseCase reacts to profile events on the worker side and
// removes the stored picture of deleted profiles.
type CleanupPictureUseCase struct {
	uploader service.Uploader
	logger   logger.Logger
}

func NewCleanupPictureUseCase(uploader service.Uploader, log logger.Logger) *CleanupPictureUseCase {
	return &CleanupPictureUseCase{uploader: uploader, logger: log}
}

func (uc *CleanupPictureUseCase) Execute(ctx context.Context, payload event.ProfileEventPayload) error {
	if payload.EventType != event.ProfileEventTypeDeleted {
		return nil
	}
	ctx, span := tracer.Start(ctx, "CleanupProfilePicture")
	defer span.End()

	publicID := pictureFolder + "/" + strconv.FormatInt(payload.ProfileID, 10)
	if err := uc.uploader.Delete(ctx, publicID); err != nil {
		span.RecordError(err)
		return fmt.Errorf("delete profile picture failed: %w", err)
	}
	uc.logger.Info("Profile picture removed", zap.Int64("profile_id", payload.ProfileID))
	return nil
}
