package persistence

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tumai/space-api/internal/domain/department"
	"github.com/tumai/space-api/pkg/apperror"
	"github.com/tumai/space-api/pkg/logger"
)

type postgresDepartmentRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresDepartmentRepo(db *pgxpool.Pool, logger logger.Logger) department.Repository {
	return &postgresDepartmentRepo{db: db, logger: logger}
}

func (r *postgresDepartmentRepo) Save(ctx context.Context, d *department.Department) error {
	query := `INSERT INTO department (handle, name, description) VALUES ($1, $2, $3)`
	if _, err := r.db.Exec(ctx, query, d.Handle, d.Name, d.Description); err != nil {
		return apperror.FromPgError("department", err)
	}
	return nil
}

func (r *postgresDepartmentRepo) FindByHandle(ctx context.Context, handle string) (*department.Department, error) {
	query := `SELECT handle, name, description FROM department WHERE handle = $1`
	d := &department.Department{}
	err := r.db.QueryRow(ctx, query, handle).Scan(&d.Handle, &d.Name, &d.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("department", handle)
		}
		return nil, apperror.NewInternal("failed to query department", err)
	}
	return d, nil
}

func (r *postgresDepartmentRepo) List(ctx context.Context) ([]*department.Department, error) {
	rows, err := r.db.Query(ctx, `SELECT handle, name, description FROM department ORDER BY handle`)
	if err != nil {
		return nil, apperror.NewInternal("failed to query departments", err)
	}
	defer rows.Close()

	deps := make([]*department.Department, 0)
	for rows.Next() {
		d := &department.Department{}
		if err := rows.Scan(&d.Handle, &d.Name, &d.Description); err != nil {
			return nil, apperror.NewInternal("failed to scan department", err)
		}
		deps = append(deps, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating departments", err)
	}
	return deps, nil
}
