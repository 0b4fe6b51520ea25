package persistence

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tumai/space-api/internal/domain/membership"
	"github.com/tumai/space-api/pkg/apperror"
	"github.com/tumai/space-api/pkg/logger"
)

type postgresMembershipRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresMembershipRepo(db *pgxpool.Pool, logger logger.Logger) membership.Repository {
	return &postgresMembershipRepo{db: db, logger: logger}
}

const membershipColumns = `id, profile_id, department_handle, role::text, time_from, time_to`

func scanMemberships(rows pgx.Rows) ([]*membership.DepartmentMembership, error) {
	defer rows.Close()
	out := make([]*membership.DepartmentMembership, 0)
	for rows.Next() {
		m := &membership.DepartmentMembership{}
		var role string
		if err := rows.Scan(&m.ID, &m.ProfileID, &m.DepartmentHandle, &role, &m.TimeFrom, &m.TimeTo); err != nil {
			return nil, apperror.NewInternal("failed to scan membership", err)
		}
		m.Role = membership.Role(role)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating memberships", err)
	}
	return out, nil
}

func (r *postgresMembershipRepo) Create(ctx context.Context, m *membership.DepartmentMembership) error {
	query := `
		INSERT INTO department_membership (role, time_from, time_to, profile_id, department_handle)
		VALUES ($1::department_role, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query, string(m.Role), m.TimeFrom, m.TimeTo, m.ProfileID, m.DepartmentHandle).Scan(&m.ID)
	if err != nil {
		return apperror.FromPgError("department membership", err)
	}
	return nil
}

func (r *postgresMembershipRepo) ListByProfile(ctx context.Context, profileID int64) ([]*membership.DepartmentMembership, error) {
	rows, err := r.db.Query(ctx, `SELECT `+membershipColumns+` FROM department_membership WHERE profile_id = $1 ORDER BY id`, profileID)
	if err != nil {
		return nil, apperror.NewInternal("failed to query memberships by profile", err)
	}
	return scanMemberships(rows)
}

func (r *postgresMembershipRepo) ListByDepartment(ctx context.Context, handle string) ([]*membership.DepartmentMembership, error) {
	rows, err := r.db.Query(ctx, `SELECT `+membershipColumns+` FROM department_membership WHERE department_handle = $1 ORDER BY id`, handle)
	if err != nil {
		return nil, apperror.NewInternal("failed to query memberships by department", err)
	}
	return scanMemberships(rows)
}

func (r *postgresMembershipRepo) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM department_membership WHERE id = $1`, id)
	if err != nil {
		return apperror.NewInternal("failed to delete membership", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("department membership", strconv.FormatInt(id, 10))
	}
	return nil
}
