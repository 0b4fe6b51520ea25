package membership_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	membershipUC "github.com/tumai/space-api/internal/application/usecase/membership"
	"github.com/tumai/space-api/internal/domain/department"
	"github.com/tumai/space-api/internal/domain/membership"
	"github.com/tumai/space-api/internal/domain/profile"
	"github.com/tumai/space-api/internal/testutil/memrepo"
	"github.com/tumai/space-api/pkg/apperror"
	"github.com/tumai/space-api/pkg/logger"
)

type MembershipUseCaseSuite struct {
	suite.Suite
	store     *memrepo.Store
	uc        *membershipUC.MembershipUseCase
	profileID int64
}

func (s *MembershipUseCaseSuite) SetupTest() {
	ctx := context.Background()
	s.store = memrepo.NewStore()
	s.uc = membershipUC.NewMembershipUseCase(s.store.Memberships(), s.store.Profiles(), s.store.Departments(), logger.NewNopLogger())

	require.NoError(s.T(), s.store.Departments().Save(ctx, &department.Department{Handle: "CS", Name: "Computer Science"}))
	p := &profile.Profile{Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace"}
	require.NoError(s.T(), s.store.Profiles().Create(ctx, p))
	s.profileID = p.ID
}

func TestMembershipUseCase(t *testing.T) {
	suite.Run(t, new(MembershipUseCaseSuite))
}

func (s *MembershipUseCaseSuite) TestAddAndList() {
	ctx := context.Background()
	m, err := s.uc.ExecuteAdd(ctx, membershipUC.AddMembershipInput{
		ProfileID:        s.profileID,
		DepartmentHandle: "CS",
		Role:             "Teamlead",
	})
	require.NoError(s.T(), err)
	assert.NotZero(s.T(), m.ID)
	assert.Equal(s.T(), membership.RoleTeamlead, m.Role)

	byProfile, err := s.uc.ExecuteListByProfile(ctx, s.profileID)
	require.NoError(s.T(), err)
	assert.Len(s.T(), byProfile, 1)

	byDepartment, err := s.uc.ExecuteListByDepartment(ctx, "CS")
	require.NoError(s.T(), err)
	assert.Len(s.T(), byDepartment, 1)
}

func (s *MembershipUseCaseSuite) TestAdd_UnknownRole() {
	_, err := s.uc.ExecuteAdd(context.Background(), membershipUC.AddMembershipInput{
		ProfileID: s.profileID, DepartmentHandle: "CS", Role: "Overlord",
	})
	assert.True(s.T(), errors.Is(err, apperror.ErrInvalidInput))
}

func (s *MembershipUseCaseSuite) TestAdd_MissingEnds() {
	ctx := context.Background()
	_, err := s.uc.ExecuteAdd(ctx, membershipUC.AddMembershipInput{
		ProfileID: 999, DepartmentHandle: "CS", Role: "Member",
	})
	assert.True(s.T(), errors.Is(err, apperror.ErrNotFound))

	_, err = s.uc.ExecuteAdd(ctx, membershipUC.AddMembershipInput{
		ProfileID: s.profileID, DepartmentHandle: "HR", Role: "Member",
	})
	assert.True(s.T(), errors.Is(err, apperror.ErrNotFound))
}

func (s *MembershipUseCaseSuite) TestRemove() {
	ctx := context.Background()
	m, err := s.uc.ExecuteAdd(ctx, membershipUC.AddMembershipInput{
		ProfileID: s.profileID, DepartmentHandle: "CS", Role: "Member",
	})
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.uc.ExecuteRemove(ctx, m.ID))
	assert.True(s.T(), errors.Is(s.uc.ExecuteRemove(ctx, m.ID), apperror.ErrNotFound))
}

func TestMembershipUseCase_Spans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	ctx := context.Background()
	store := memrepo.NewStore()
	uc := membershipUC.NewMembershipUseCase(store.Memberships(), store.Profiles(), store.Departments(), logger.NewNopLogger())
	require.NoError(t, store.Departments().Save(ctx, &department.Department{Handle: "CS", Name: "Computer Science"}))
	p := &profile.Profile{Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace"}
	require.NoError(t, store.Profiles().Create(ctx, p))

	m, err := uc.ExecuteAdd(ctx, membershipUC.AddMembershipInput{ProfileID: p.ID, DepartmentHandle: "CS", Role: "Member"})
	require.NoError(t, err)
	_, err = uc.ExecuteListByProfile(ctx, p.ID)
	require.NoError(t, err)
	_, err = uc.ExecuteListByDepartment(ctx, "CS")
	require.NoError(t, err)
	require.NoError(t, uc.ExecuteRemove(ctx, m.ID))

	var names []string
	for _, span := range recorder.Ended() {
		names = append(names, span.Name())
	}
	assert.Equal(t, []string{"AddMembership", "ListProfileMemberships", "ListDepartmentMemberships", "RemoveMembership"}, names)
}
