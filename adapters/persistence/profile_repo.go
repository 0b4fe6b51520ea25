package persistence

import (
	"context"
	"errors"
	"strconv"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/tumai/space-api/internal/domain/profile"
	"github.com/tumai/space-api/pkg/apperror"
	"github.com/tumai/space-api/pkg/logger"
)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const profileColumns = `id, supertokens_id, email, phone, first_name, last_name, birthday,
	nationality, description, activity_status, degree_level, degree_name, degree_semester,
	degree_semester_last_change_date, university, job_history, time_joined,
	profile_picture_url, time_created, time_updated`

func scanProfile(row pgx.Row) (*profile.Profile, error) {
	p := &profile.Profile{}
	err := row.Scan(
		&p.ID, &p.IdentityID, &p.Email, &p.Phone, &p.FirstName, &p.LastName, &p.Birthday,
		&p.Nationality, &p.Description, &p.ActivityStatus, &p.DegreeLevel, &p.DegreeName, &p.DegreeSemester,
		&p.DegreeSemesterLastChangeDate, &p.University, &p.JobHistory, &p.TimeJoined,
		&p.ProfilePictureURL, &p.TimeCreated, &p.TimeUpdated,
	)
	if err != nil {
		return nil, err
	}
	p.SocialNetworks = []profile.SocialNetwork{}
	return p, nil
}

// mutableColumns is the column set written by insert and update.
func mutableColumns(p *profile.Profile) map[string]any {
	return map[string]any{
		"supertokens_id":                   p.IdentityID,
		"email":                            p.Email,
		"phone":                            p.Phone,
		"first_name":                       p.FirstName,
		"last_name":                        p.LastName,
		"birthday":                         p.Birthday,
		"nationality":                      p.Nationality,
		"description":                      p.Description,
		"activity_status":                  p.ActivityStatus,
		"degree_level":                     p.DegreeLevel,
		"degree_name":                      p.DegreeName,
		"degree_semester":                  p.DegreeSemester,
		"degree_semester_last_change_date": p.DegreeSemesterLastChangeDate,
		"university":                       p.University,
		"job_history":                      p.JobHistory,
		"time_joined":                      p.TimeJoined,
		"profile_picture_url":              p.ProfilePictureURL,
	}
}

func insertProfile(ctx context.Context, q querier, p *profile.Profile) error {
	sql, args, err := psql.Insert("profile").
		SetMap(mutableColumns(p)).
		Suffix("RETURNING id, time_created").
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build profile insert", err)
	}
	if err := q.QueryRow(ctx, sql, args...).Scan(&p.ID, &p.TimeCreated); err != nil {
		return apperror.FromPgError("profile", err)
	}
	return replaceSocialNetworks(ctx, q, p)
}

// replaceSocialNetworks swaps the stored networks of p for p.SocialNetworks.
// It must run inside the transaction that wrote the profile row.
func replaceSocialNetworks(ctx context.Context, q querier, p *profile.Profile) error {
	if _, err := q.Exec(ctx, `DELETE FROM social_network WHERE profile_id = $1`, p.ID); err != nil {
		return apperror.NewInternal("failed to clear social networks", err)
	}
	if len(p.SocialNetworks) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i := range p.SocialNetworks {
		sn := &p.SocialNetworks[i]
		sn.ProfileID = p.ID
		batch.Queue(
			`INSERT INTO social_network (profile_id, type, handle, link) VALUES ($1, $2::social_network_type, $3, $4)`,
			sn.ProfileID, string(sn.Type), sn.Handle, sn.Link,
		)
	}
	if err := q.SendBatch(ctx, batch).Close(); err != nil {
		return apperror.FromPgError("social network", err)
	}
	return nil
}

func loadSocialNetworks(ctx context.Context, q querier, profiles []*profile.Profile) error {
	if len(profiles) == 0 {
		return nil
	}
	byID := make(map[int64]*profile.Profile, len(profiles))
	ids := make([]int64, len(profiles))
	for i, p := range profiles {
		byID[p.ID] = p
		ids[i] = p.ID
	}

	rows, err := q.Query(ctx,
		`SELECT profile_id, type::text, handle, link FROM social_network WHERE profile_id = ANY($1) ORDER BY profile_id, type`,
		ids)
	if err != nil {
		return apperror.NewInternal("failed to query social networks", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sn profile.SocialNetwork
		var snType string
		if err := rows.Scan(&sn.ProfileID, &snType, &sn.Handle, &sn.Link); err != nil {
			return apperror.NewInternal("failed to scan social network", err)
		}
		sn.Type = profile.SocialNetworkType(snType)
		if p, ok := byID[sn.ProfileID]; ok {
			p.SocialNetworks = append(p.SocialNetworks, sn)
		}
	}
	if err := rows.Err(); err != nil {
		return apperror.NewInternal("error iterating social networks", err)
	}
	return nil
}

func (r *postgresProfileRepo) Create(ctx context.Context, p *profile.Profile) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		return insertProfile(ctx, tx, p)
	})
}

func (r *postgresProfileRepo) CreateBatch(ctx context.Context, profiles []*profile.Profile) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		for _, p := range profiles {
			if err := insertProfile(ctx, tx, p); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *postgresProfileRepo) findOne(ctx context.Context, where sq.Eq, identifier string) (*profile.Profile, error) {
	sql, args, err := psql.Select(profileColumns).From("profile").Where(where).ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build profile query", err)
	}
	p, err := scanProfile(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("profile", identifier)
		}
		return nil, apperror.NewInternal("failed to query profile", err)
	}
	if err := loadSocialNetworks(ctx, r.db, []*profile.Profile{p}); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresProfileRepo) FindByID(ctx context.Context, id int64) (*profile.Profile, error) {
	return r.findOne(ctx, sq.Eq{"id": id}, strconv.FormatInt(id, 10))
}

func (r *postgresProfileRepo) FindByIdentityID(ctx context.Context, identityID string) (*profile.Profile, error) {
	return r.findOne(ctx, sq.Eq{"supertokens_id": identityID}, identityID)
}

func (r *postgresProfileRepo) List(ctx context.Context, limit, offset int) ([]*profile.Profile, error) {
	sql, args, err := psql.Select(profileColumns).
		From("profile").
		OrderBy("id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build profile list query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query profiles", err)
	}
	defer rows.Close()

	profiles := make([]*profile.Profile, 0, limit)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, apperror.NewInternal("failed to scan profile row", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating profile rows", err)
	}
	rows.Close()

	if err := loadSocialNetworks(ctx, r.db, profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *postgresProfileRepo) Update(ctx context.Context, p *profile.Profile) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		sql, args, err := psql.Update("profile").
			SetMap(mutableColumns(p)).
			Set("time_updated", sq.Expr("NOW()")).
			Where(sq.Eq{"id": p.ID}).
			Suffix("RETURNING time_updated").
			ToSql()
		if err != nil {
			return apperror.NewInternal("failed to build profile update", err)
		}

		var updatedAt time.Time
		if err := tx.QueryRow(ctx, sql, args...).Scan(&updatedAt); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperror.NewNotFound("profile", strconv.FormatInt(p.ID, 10))
			}
			return apperror.FromPgError("profile", err)
		}
		p.TimeUpdated = &updatedAt
		return replaceSocialNetworks(ctx, tx, p)
	})
}

func (r *postgresProfileRepo) Delete(ctx context.Context, id int64) (bool, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM profile WHERE id = $1`, id)
	if err != nil {
		return false, apperror.NewInternal("failed to delete profile", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *postgresProfileRepo) DeleteBatch(ctx context.Context, ids []int64) ([]int64, error) {
	deleted := make([]int64, 0, len(ids))
	if len(ids) == 0 {
		return deleted, nil
	}

	rows, err := r.db.Query(ctx, `DELETE FROM profile WHERE id = ANY($1) RETURNING id`, ids)
	if err != nil {
		return nil, apperror.NewInternal("failed to delete profiles", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, apperror.NewInternal("failed to scan deleted profile id", err)
		}
		deleted = append(deleted, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating deleted profiles", err)
	}

	if len(deleted) != len(ids) {
		r.logger.Warn("Some profiles were not found for batch delete",
			zap.Int("requested", len(ids)), zap.Int("deleted", len(deleted)))
	}
	return deleted, nil
}

func (r *postgresProfileRepo) SetPictureURL(ctx context.Context, id int64, url string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE profile SET profile_picture_url = $2, time_updated = NOW() WHERE id = $1`, id, url)
	if err != nil {
		return apperror.NewInternal("failed to set profile picture", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("profile", strconv.FormatInt(id, 10))
	}
	return nil
}
