package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/shiftmatch/jobmatch-service/internal/domain"
)

// ApplicationRepository encapsulates application persistence. The store keeps
// a unique constraint on (seeker_id, job_id); Create reports it as ErrDuplicate.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, id int64) (*domain.Application, error)
	GetBySeekerAndJob(ctx context.Context, seekerID, jobID int64) (*domain.Application, error)
	ListBySeeker(ctx context.Context, seekerID int64) ([]domain.Application, error)
	ListByJob(ctx context.Context, jobID int64) ([]domain.Application, error)
	// UpdateStatus moves the application from -> to; ErrNotFound if it is no longer in from.
	UpdateStatus(ctx context.Context, id int64, from, to domain.ApplicationStatus) error
	// Delete removes the application only if it still belongs to seekerID.
	Delete(ctx context.Context, id, seekerID int64) error
}

const applicationColumns = `id, seeker_id, job_id, status, message, applied_at, updated_at`

type applicationRepository struct {
	db DBTX
}

// NewApplicationRepository instantiates repository.
func NewApplicationRepository(db DBTX) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	const query = `
        INSERT INTO applications (seeker_id, job_id, status, message)
        VALUES ($1,$2,$3,$4)
        RETURNING id, applied_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		app.SeekerID,
		app.JobID,
		app.Status,
		app.Message,
	).Scan(&app.ID, &app.AppliedAt, &app.UpdatedAt)
	return mapError(err)
}

func (r *applicationRepository) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	app, err := scanApplication(r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id=$1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return app, nil
}

func (r *applicationRepository) GetBySeekerAndJob(ctx context.Context, seekerID, jobID int64) (*domain.Application, error) {
	app, err := scanApplication(r.db.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE seeker_id=$1 AND job_id=$2`, seekerID, jobID))
	if err != nil {
		return nil, mapError(err)
	}
	return app, nil
}

func (r *applicationRepository) ListBySeeker(ctx context.Context, seekerID int64) ([]domain.Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications WHERE seeker_id=$1 ORDER BY applied_at DESC, id DESC`, seekerID)
}

func (r *applicationRepository) ListByJob(ctx context.Context, jobID int64) ([]domain.Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications WHERE job_id=$1 ORDER BY applied_at ASC, id ASC`, jobID)
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.ApplicationStatus) error {
	const query = `
        UPDATE applications SET status=$1, updated_at=NOW()
        WHERE id=$2 AND status=$3`
	return rowsAffected(r.db.Exec(ctx, query, to, id, from))
}

func (r *applicationRepository) Delete(ctx context.Context, id, seekerID int64) error {
	return rowsAffected(r.db.Exec(ctx, `DELETE FROM applications WHERE id=$1 AND seeker_id=$2`, id, seekerID))
}

func (r *applicationRepository) list(ctx context.Context, query string, arg any) ([]domain.Application, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var result []domain.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *app)
	}
	return result, rows.Err()
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var app domain.Application
	if err := row.Scan(
		&app.ID,
		&app.SeekerID,
		&app.JobID,
		&app.Status,
		&app.Message,
		&app.AppliedAt,
		&app.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &app, nil
}
