package profile

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/tumai/space-api/adapters/event"
	"github.com/tumai/space-api/internal/application/service"
	"github.com/tumai/space-api/internal/domain/profile"
	"github.com/tumai/space-api/pkg/apperror"
	"github.com/tumai/space-api/pkg/logger"
)

type CreateProfileUseCase struct {
	profileRepo profile.Repository
	publisher   service.ProfileEventPublisher
	logger      logger.Logger
	now         func() time.Time
}

func NewCreateProfileUseCase(repo profile.Repository, pub service.ProfileEventPublisher, log logger.Logger) *CreateProfileUseCase {
	return &CreateProfileUseCase{profileRepo: repo, publisher: pub, logger: log, now: time.Now}
}

type CreateProfileInput struct {
	IdentityID     *string
	Email          string
	Phone          *string
	FirstName      string
	LastName       string
	Birthday       *time.Time
	Nationality    *string
	Description    *string
	ActivityStatus *string
	DegreeLevel    *string
	DegreeName     *string
	DegreeSemester *int
	University     *string
	JobHistory     []profile.JobHistoryElement
	TimeJoined     *time.Time
	SocialNetworks []profile.SocialNetwork
}

func (uc *CreateProfileUseCase) build(input CreateProfileInput) (*profile.Profile, error) {
	p := &profile.Profile{
		IdentityID:     input.IdentityID,
		Email:          input.Email,
		Phone:          input.Phone,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Birthday:       input.Birthday,
		Nationality:    input.Nationality,
		Description:    input.Description,
		ActivityStatus: input.ActivityStatus,
		DegreeLevel:    input.DegreeLevel,
		DegreeName:     input.DegreeName,
		DegreeSemester: input.DegreeSemester,
		University:     input.University,
		JobHistory:     profile.EncodeJobHistory(input.JobHistory),
		TimeJoined:     input.TimeJoined,
		SocialNetworks: input.SocialNetworks,
	}
	if p.SocialNetworks == nil {
		p.SocialNetworks = []profile.SocialNetwork{}
	}
	if p.DegreeSemester != nil {
		stamp := uc.now().UTC()
		p.DegreeSemesterLastChangeDate = &stamp
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *CreateProfileUseCase) Execute(ctx context.Context, input CreateProfileInput) (*profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "CreateProfile")
	defer span.End()

	p, err := uc.build(input)
	if err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	if err := uc.profileRepo.Create(ctx, p); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("create profile failed: %w", err)
	}
	span.SetAttributes(attribute.Int64("profile.id", p.ID))

	uc.logger.Info("Profile created", zap.Int64("profile_id", p.ID))
	publishAsync(uc.publisher, uc.logger, event.ProfileEventTypeCreated, p.ID)
	return p, nil
}

// ExecuteBatch creates all profiles or none of them.
func (uc *CreateProfileUseCase) ExecuteBatch(ctx context.Context, inputs []CreateProfileInput) ([]*profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "CreateProfiles")
	defer span.End()
	span.SetAttributes(attribute.Int("profile.count", len(inputs)))

	profiles := make([]*profile.Profile, len(inputs))
	for i, input := range inputs {
		p, err := uc.build(input)
		if err != nil {
			return nil, apperror.NewInvalidInput(fmt.Sprintf("profile %d: %s", i, err.Error()), err)
		}
		profiles[i] = p
	}
	if len(profiles) == 0 {
		return profiles, nil
	}

	if err := uc.profileRepo.CreateBatch(ctx, profiles); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("create profiles failed: %w", err)
	}

	uc.logger.Info("Profiles created", zap.Int("count", len(profiles)))
	for _, p := range profiles {
		publishAsync(uc.publisher, uc.logger, event.ProfileEventTypeCreated, p.ID)
	}
	return profiles, nil
}
