package profile

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/tumai/space-api/internal/domain/profile"
	"github.com/tumai/space-api/pkg/paging"
)

type ListProfilesUseCase struct {
	profileRepo profile.Repository
	maxPageSize int
}

func NewListProfilesUseCase(repo profile.Repository, maxPageSize int) *ListProfilesUseCase {
	return &ListProfilesUseCase{profileRepo: repo, maxPageSize: maxPageSize}
}

type ListProfilesInput struct {
	Page     int
	PageSize int
}

type ListProfilesOutput struct {
	Profiles []*profile.Profile
	Page     paging.Page
}

func (uc *ListProfilesUseCase) Execute(ctx context.Context, input ListProfilesInput) (*ListProfilesOutput, error) {
	ctx, span := tracer.Start(ctx, "ListProfiles")
	defer span.End()

	page, err := paging.Normalize(input.Page, input.PageSize, uc.maxPageSize)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("page", page.Number), attribute.Int("page_size", page.Size))

	profiles, err := uc.profileRepo.List(ctx, page.Limit(), page.Offset())
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list profiles failed: %w", err)
	}
	return &ListProfilesOutput{Profiles: profiles, Page: page}, nil
}
