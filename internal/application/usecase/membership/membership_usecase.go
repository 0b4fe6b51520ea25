package membership

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/tumai/space-api/internal/domain/department"
	"github.com/tumai/space-api/internal/domain/membership"
	"github.com/tumai/space-api/internal/domain/profile"
	"github.com/tumai/space-api/pkg/apperror"
	"github.com/tumai/space-api/pkg/logger"
)

var tracer = otel.Tracer("membership_usecase")

type MembershipUseCase struct {
	membershipRepo membership.Repository
	profileRepo    profile.Repository
	departmentRepo department.Repository
	logger         logger.Logger
}

func NewMembershipUseCase(mRepo membership.Repository, pRepo profile.Repository, dRepo department.Repository, log logger.Logger) *MembershipUseCase {
	return &MembershipUseCase{
		membershipRepo: mRepo,
		profileRepo:    pRepo,
		departmentRepo: dRepo,
		logger:         log,
	}
}

type AddMembershipInput struct {
	ProfileID        int64
	DepartmentHandle string
	Role             string
	TimeFrom         *time.Time
	TimeTo           *time.Time
}

func (uc *MembershipUseCase) ExecuteAdd(ctx context.Context, input AddMembershipInput) (*membership.DepartmentMembership, error) {
	ctx, span := tracer.Start(ctx, "AddMembership")
	defer span.End()

	role, err := membership.ParseRole(input.Role)
	if err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	m := &membership.DepartmentMembership{
		ProfileID:        input.ProfileID,
		DepartmentHandle: input.DepartmentHandle,
		Role:             role,
		TimeFrom:         input.TimeFrom,
		TimeTo:           input.TimeTo,
	}
	if err := m.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	// Resolve both ends first so a missing one is reported as 404, not as a FK violation.
	if _, err := uc.profileRepo.FindByID(ctx, input.ProfileID); err != nil {
		return nil, err
	}
	if _, err := uc.departmentRepo.FindByHandle(ctx, input.DepartmentHandle); err != nil {
		return nil, err
	}

	if err := uc.membershipRepo.Create(ctx, m); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("add membership failed: %w", err)
	}
	return m, nil
}

func (uc *MembershipUseCase) ExecuteListByProfile(ctx context.Context, profileID int64) ([]*membership.DepartmentMembership, error) {
	ctx, span := tracer.Start(ctx, "ListProfileMemberships")
	defer span.End()

	if _, err := uc.profileRepo.FindByID(ctx, profileID); err != nil {
		return nil, err
	}
	return uc.membershipRepo.ListByProfile(ctx, profileID)
}

func (uc *MembershipUseCase) ExecuteListByDepartment(ctx context.Context, handle string) ([]*membership.DepartmentMembership, error) {
	ctx, span := tracer.Start(ctx, "ListDepartmentMemberships")
	defer span.End()

	if _, err := uc.departmentRepo.FindByHandle(ctx, handle); err != nil {
		return nil, err
	}
	return uc.membershipRepo.ListByDepartment(ctx, handle)
}

func (uc *MembershipUseCase) ExecuteRemove(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "RemoveMembership")
	defer span.End()

	if err := uc.membershipRepo.Delete(ctx, id); err != nil {
		span.RecordError(err)
		return fmt.Errorf("remove membership failed: %w", err)
	}
	return nil
}
