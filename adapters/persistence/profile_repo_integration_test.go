package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/tumai/space-api/internal/domain/department"
	"github.com/tumai/space-api/internal/domain/membership"
	"github.com/tumai/space-api/internal/domain/profile"
	"github.com/tumai/space-api/pkg/apperror"
	"github.com/tumai/space-api/pkg/logger"
)

type ProfileRepoIntegrationTestSuite struct {
	suite.Suite
	dbPool         *pgxpool.Pool
	pgContainer    *postgres.PostgresContainer
	testLogger     logger.Logger
	profileRepo    profile.Repository
	departmentRepo department.Repository
	membershipRepo membership.Repository
}

func (s *ProfileRepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()
	s.testLogger = logger.NewNopLogger()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	if err := RunMigrations(dsn, s.testLogger); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool

	s.profileRepo = NewPostgresProfileRepo(s.dbPool, s.testLogger)
	s.departmentRepo = NewPostgresDepartmentRepo(s.dbPool, s.testLogger)
	s.membershipRepo = NewPostgresMembershipRepo(s.dbPool, s.testLogger)

	if err := s.departmentRepo.Save(ctx, &department.Department{Handle: "CS", Name: "Computer Science"}); err != nil {
		s.T().Fatalf("Failed to seed department: %s", err)
	}
}

func (s *ProfileRepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func (s *ProfileRepoIntegrationTestSuite) TearDownTest() {
	_, err := s.dbPool.Exec(context.Background(), `TRUNCATE profile RESTART IDENTITY CASCADE`)
	require.NoError(s.T(), err)
}

func TestProfileRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(ProfileRepoIntegrationTestSuite))
}

func strPtr(s string) *string { return &s }

func newProfile(email string) *profile.Profile {
	return &profile.Profile{
		Email:     email,
		FirstName: "Ada",
		LastName:  "Lovelace",
		SocialNetworks: []profile.SocialNetwork{
			{Type: profile.SocialGitHub, Handle: strPtr("ada")},
			{Type: profile.SocialLinkedIn, Link: strPtr("https://linkedin.com/in/ada")},
		},
	}
}

func (s *ProfileRepoIntegrationTestSuite) count(table string) int {
	var n int
	require.NoError(s.T(), s.dbPool.QueryRow(context.Background(), `SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

func (s *ProfileRepoIntegrationTestSuite) Test_Create_And_FindByID() {
	ctx := context.Background()
	p := newProfile("ada@example.com")
	p.IdentityID = strPtr("st-ada")
	p.JobHistory = profile.EncodeJobHistory([]profile.JobHistoryElement{{Employer: "ACME", Position: "Eng", DateFrom: "2020", DateTo: "2021"}})

	require.NoError(s.T(), s.profileRepo.Create(ctx, p))
	assert.NotZero(s.T(), p.ID)
	assert.False(s.T(), p.TimeCreated.IsZero())

	found, err := s.profileRepo.FindByID(ctx, p.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "ada@example.com", found.Email)
	assert.Equal(s.T(), p.JobHistory, found.JobHistory)
	require.Len(s.T(), found.SocialNetworks, 2)

	byIdentity, err := s.profileRepo.FindByIdentityID(ctx, "st-ada")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), p.ID, byIdentity.ID)

	_, err = s.profileRepo.FindByID(ctx, p.ID+1000)
	assert.True(s.T(), errors.Is(err, apperror.ErrNotFound))
}

func (s *ProfileRepoIntegrationTestSuite) Test_HandleXorLink_RollsBack() {
	ctx := context.Background()
	p := newProfile("bad@example.com")
	p.SocialNetworks = append(p.SocialNetworks, profile.SocialNetwork{
		Type: profile.SocialSlack, Handle: strPtr("@ada"), Link: strPtr("https://slack.com/ada"),
	})

	err := s.profileRepo.Create(ctx, p)
	require.Error(s.T(), err)
	assert.True(s.T(), errors.Is(err, apperror.ErrInvalidInput))
	assert.Zero(s.T(), s.count("profile"))
	assert.Zero(s.T(), s.count("social_network"))
}

func (s *ProfileRepoIntegrationTestSuite) Test_UniqueIdentity() {
	ctx := context.Background()
	a := newProfile("a@example.com")
	a.IdentityID = strPtr("st-1")
	b := newProfile("b@example.com")
	b.IdentityID = strPtr("st-1")

	err := s.profileRepo.CreateBatch(ctx, []*profile.Profile{a, b})
	assert.True(s.T(), errors.Is(err, apperror.ErrConflict))
	assert.Zero(s.T(), s.count("profile"))
}

func (s *ProfileRepoIntegrationTestSuite) Test_Update_ReplacesNetworks() {
	ctx := context.Background()
	p := newProfile("ada@example.com")
	require.NoError(s.T(), s.profileRepo.Create(ctx, p))

	p.LastName = "King"
	p.SocialNetworks = []profile.SocialNetwork{{Type: profile.SocialDiscord, Handle: strPtr("ada#1")}}
	require.NoError(s.T(), s.profileRepo.Update(ctx, p))
	require.NotNil(s.T(), p.TimeUpdated)

	found, err := s.profileRepo.FindByID(ctx, p.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "King", found.LastName)
	require.Len(s.T(), found.SocialNetworks, 1)
	assert.Equal(s.T(), profile.SocialDiscord, found.SocialNetworks[0].Type)

	missing := newProfile("ghost@example.com")
	missing.ID = 424242
	assert.True(s.T(), errors.Is(s.profileRepo.Update(ctx, missing), apperror.ErrNotFound))
}

func (s *ProfileRepoIntegrationTestSuite) Test_Delete_Cascades() {
	ctx := context.Background()
	p := newProfile("ada@example.com")
	require.NoError(s.T(), s.profileRepo.Create(ctx, p))
	require.NoError(s.T(), s.membershipRepo.Create(ctx, &membership.DepartmentMembership{
		ProfileID: p.ID, DepartmentHandle: "CS", Role: membership.RoleTeamlead,
	}))
	assert.Equal(s.T(), 1, s.count("department_membership"))

	deleted, err := s.profileRepo.Delete(ctx, p.ID)
	require.NoError(s.T(), err)
	assert.True(s.T(), deleted)
	assert.Zero(s.T(), s.count("department_membership"))
	assert.Zero(s.T(), s.count("social_network"))

	deleted, err = s.profileRepo.Delete(ctx, p.ID)
	require.NoError(s.T(), err)
	assert.False(s.T(), deleted)
}

func (s *ProfileRepoIntegrationTestSuite) Test_DeleteBatch_And_Paging() {
	ctx := context.Background()
	var ids []int64
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		p := newProfile(email)
		require.NoError(s.T(), s.profileRepo.Create(ctx, p))
		ids = append(ids, p.ID)
	}

	page, err := s.profileRepo.List(ctx, 2, 2)
	require.NoError(s.T(), err)
	require.Len(s.T(), page, 1)
	assert.Equal(s.T(), "c@example.com", page[0].Email)
	assert.Len(s.T(), page[0].SocialNetworks, 2)

	deleted, err := s.profileRepo.DeleteBatch(ctx, []int64{ids[0], 99999, ids[2]})
	require.NoError(s.T(), err)
	assert.ElementsMatch(s.T(), []int64{ids[0], ids[2]}, deleted)
	assert.Equal(s.T(), 1, s.count("profile"))
}

func (s *ProfileRepoIntegrationTestSuite) Test_SetPictureURL() {
	ctx := context.Background()
	p := newProfile("ada@example.com")
	require.NoError(s.T(), s.profileRepo.Create(ctx, p))

	require.NoError(s.T(), s.profileRepo.SetPictureURL(ctx, p.ID, "https://res.cloudinary.com/x.png"))
	found, err := s.profileRepo.FindByID(ctx, p.ID)
	require.NoError(s.T(), err)
	require.NotNil(s.T(), found.ProfilePictureURL)
	assert.Equal(s.T(), "https://res.cloudinary.com/x.png", *found.ProfilePictureURL)
}

func (s *ProfileRepoIntegrationTestSuite) Test_Membership_ForeignKeys() {
	ctx := context.Background()
	p := newProfile("ada@example.com")
	require.NoError(s.T(), s.profileRepo.Create(ctx, p))

	err := s.membershipRepo.Create(ctx, &membership.DepartmentMembership{
		ProfileID: p.ID, DepartmentHandle: "NOPE", Role: membership.RoleMember,
	})
	assert.True(s.T(), errors.Is(err, apperror.ErrInvalidInput))

	byDep, err := s.membershipRepo.ListByDepartment(ctx, "CS")
	require.NoError(s.T(), err)
	assert.Empty(s.T(), byDep)
}
