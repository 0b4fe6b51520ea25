package profile

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/tumai/space-api/internal/domain/membership"
	"github.com/tumai/space-api/internal/domain/profile"
)

type GetProfileUseCase struct {
	profileRepo    profile.Repository
	membershipRepo membership.Repository
}

func NewGetProfileUseCase(pRepo profile.Repository, mRepo membership.Repository) *GetProfileUseCase {
	return &GetProfileUseCase{profileRepo: pRepo, membershipRepo: mRepo}
}

type GetProfileOutput struct {
	Profile     *profile.Profile
	Memberships []*membership.DepartmentMembership
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, profileID int64) (*GetProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "GetProfile")
	defer span.End()
	span.SetAttributes(attribute.Int64("profile.id", profileID))

	p, err := uc.profileRepo.FindByID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("get profile failed: %w", err)
	}
	return uc.withMemberships(ctx, p)
}

// ExecuteByIdentity resolves the profile of the signed-in user.
func (uc *GetProfileUseCase) ExecuteByIdentity(ctx context.Context, identityID string) (*GetProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "GetProfileByIdentity")
	defer span.End()

	p, err := uc.profileRepo.FindByIdentityID(ctx, identityID)
	if err != nil {
		return nil, fmt.Errorf("get current profile failed: %w", err)
	}
	return uc.withMemberships(ctx, p)
}

func (uc *GetProfileUseCase) withMemberships(ctx context.Context, p *profile.Profile) (*GetProfileOutput, error) {
	ms, err := uc.membershipRepo.ListByProfile(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("list profile memberships failed: %w", err)
	}
	return &GetProfileOutput{Profile: p, Memberships: ms}, nil
}
