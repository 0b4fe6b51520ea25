package profile

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/tumai/space-api/adapters/event"
	"github.com/tumai/space-api/internal/application/service"
	"github.com/tumai/space-api/internal/domain/profile"
	"github.com/tumai/space-api/pkg/apperror"
	"github.com/tumai/space-api/pkg/logger"
)

const pictureFolder = "profiles/pictures"

type UploadPictureUseCase struct {
	profileRepo profile.Repository
	uploader    service.Uploader
	publisher   service.ProfileEventPublisher
	logger      logger.Logger
}

func NewUploadPictureUseCase(repo profile.Repository, uploader service.Uploader, pub service.ProfileEventPublisher, log logger.Logger) *UploadPictureUseCase {
	return &UploadPictureUseCase{profileRepo: repo, uploader: uploader, publisher: pub, logger: log}
}

// Execute stores the picture under a per-profile public id, so uploading
// again replaces the previous image.
func (uc *UploadPictureUseCase) Execute(ctx context.Context, profileID int64, file io.Reader) (*profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "UploadProfilePicture")
	defer span.End()

	if uc.uploader == nil {
		return nil, apperror.NewInternal("picture storage is not configured", nil)
	}
	if _, err := uc.profileRepo.FindByID(ctx, profileID); err != nil {
		return nil, err
	}

	publicID := strconv.FormatInt(profileID, 10)
	url, err := uc.uploader.Upload(ctx, file, pictureFolder, publicID)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to upload profile picture", err)
	}

	if err := uc.profileRepo.SetPictureURL(ctx, profileID, url); err != nil {
		return nil, fmt.Errorf("store profile picture failed: %w", err)
	}

	p, err := uc.profileRepo.FindByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	publishAsync(uc.publisher, uc.logger, event.ProfileEventTypeUpdated, profileID)
	return p, nil
}
