package media_storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"

	"github.com/tumai/space-api/internal/application/service"
	"github.com/tumai/space-api/internal/config"
	"github.com/tumai/space-api/pkg/logger"
)

// pictureFormats are the image formats accepted for profile pictures.
var pictureFormats = api.CldAPIArray{"jpg", "jpeg", "png", "webp"}

const destroyNotFound = "not found"

type cloudinaryAdapter struct {
	cld    *cloudinary.Cloudinary
	logger logger.Logger
}

func NewCloudinaryAdapter(cfg config.Config, log logger.Logger) (service.Uploader, error) {
	if cfg.Cloudinary.CloudName == "" {
		return nil, errors.New("cloudinary cloud_name is not configured")
	}

	cld, err := cloudinary.NewFromParams(
		cfg.Cloudinary.CloudName,
		cfg.Cloudinary.ApiKey,
		cfg.Cloudinary.ApiSecret,
	)
	if err != nil {
		return nil, fmt.Errorf("cannot init cloudinary: %w", err)
	}

	log.Info("Cloudinary picture storage ready", zap.String("cloud_name", cfg.Cloudinary.CloudName))
	return &cloudinaryAdapter{cld: cld, logger: log}, nil
}

// Upload stores an image under folder/publicID, replacing any previous
// version and invalidating cached copies of it.
func (a *cloudinaryAdapter) Upload(ctx context.Context, file io.Reader, folder string, publicID string) (string, error) {
	result, err := a.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       publicID,
		Folder:         folder,
		ResourceType:   "image",
		AllowedFormats: pictureFormats,
		Overwrite:      api.Bool(true),
		Invalidate:     api.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload picture: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary rejected picture: %s", result.Error.Message)
	}
	return result.SecureURL, nil
}

// Delete removes an image. A missing asset counts as deleted.
func (a *cloudinaryAdapter) Delete(ctx context.Context, publicID string) error {
	result, err := a.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
		Invalidate:   api.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("failed to delete picture: %w", err)
	}
	if result.Result == destroyNotFound {
		a.logger.Info("Picture already absent", zap.String("public_id", publicID))
	}
	return destroyOutcome(result)
}

func destroyOutcome(result *uploader.DestroyResult) error {
	if result.Error.Message != "" {
		return fmt.Errorf("cloudinary rejected delete: %s", result.Error.Message)
	}
	switch result.Result {
	case "ok", destroyNotFound:
		return nil
	default:
		return fmt.Errorf("unexpected cloudinary delete result %q", result.Result)
	}
}
