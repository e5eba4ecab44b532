package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/shiftmatch/jobmatch-service/internal/domain"
)

// JobFilter captures listing parameters.
type JobFilter struct {
	ShopID     *int64
	CategoryID *int64
	Statuses   []domain.JobStatus
	Limit      int
	Offset     int
}

// JobRepository encapsulates job posting persistence.
type JobRepository interface {
	Create(ctx context.Context, job *domain.JobPosting) error
	GetByID(ctx context.Context, id int64) (*domain.JobPosting, error)
	// GetForUpdate reads and row-locks the posting for the rest of the transaction.
	GetForUpdate(ctx context.Context, id int64) (*domain.JobPosting, error)
	// UpdateStatus moves the posting from -> to; ErrNotFound if it is no longer in from.
	UpdateStatus(ctx context.Context, id int64, from, to domain.JobStatus) error
	List(ctx context.Context, filter JobFilter) ([]domain.JobPosting, error)
}

const jobColumns = `id, shop_id, category_id, title, description, status, required_headcount, wage, work_date, created_at, updated_at`

type jobRepository struct {
	db DBTX
}

// NewJobRepository instantiates repository.
func NewJobRepository(db DBTX) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, job *domain.JobPosting) error {
	const query = `
        INSERT INTO job_postings (shop_id, category_id, title, description, status, required_headcount, wage, work_date)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		job.ShopID,
		job.CategoryID,
		job.Title,
		job.Description,
		job.Status,
		job.RequiredHeadcount,
		job.Wage,
		job.WorkDate,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
	return mapError(err)
}

func (r *jobRepository) GetByID(ctx context.Context, id int64) (*domain.JobPosting, error) {
	return r.fetchSingle(ctx, `SELECT `+jobColumns+` FROM job_postings WHERE id=$1`, id)
}

func (r *jobRepository) GetForUpdate(ctx context.Context, id int64) (*domain.JobPosting, error) {
	return r.fetchSingle(ctx, `SELECT `+jobColumns+` FROM job_postings WHERE id=$1 FOR UPDATE`, id)
}

func (r *jobRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.JobStatus) error {
	const query = `
        UPDATE job_postings SET status=$1, updated_at=NOW()
        WHERE id=$2 AND status=$3`
	return rowsAffected(r.db.Exec(ctx, query, to, id, from))
}

func (r *jobRepository) List(ctx context.Context, filter JobFilter) ([]domain.JobPosting, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.ShopID != nil {
		args = append(args, *filter.ShopID)
		clauses = append(clauses, fmt.Sprintf("shop_id=$%d", len(args)))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		clauses = append(clauses, fmt.Sprintf("category_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}

	limit, offset := normalizePage(filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM job_postings WHERE %s ORDER BY created_at DESC, id DESC LIMIT %d OFFSET %d`,
		jobColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var result []domain.JobPosting
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *job)
	}
	return result, rows.Err()
}

func (r *jobRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.JobPosting, error) {
	job, err := scanJob(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, mapError(err)
	}
	return job, nil
}

func scanJob(row pgx.Row) (*domain.JobPosting, error) {
	var job domain.JobPosting
	if err := row.Scan(
		&job.ID,
		&job.ShopID,
		&job.CategoryID,
		&job.Title,
		&job.Description,
		&job.Status,
		&job.RequiredHeadcount,
		&job.Wage,
		&job.WorkDate,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &job, nil
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
