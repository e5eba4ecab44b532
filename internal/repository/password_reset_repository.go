package repository

import (
	"context"
	"time"

	"github.com/shiftmatch/jobmatch-service/internal/domain"
)

// PasswordResetRepository manages recovery code persistence.
type PasswordResetRepository interface {
	Create(ctx context.Context, reset *domain.PasswordReset) error
	// FindActive returns the newest unused record for (userID, code) expiring at or after now.
	FindActive(ctx context.Context, userID int64, code string, now time.Time) (*domain.PasswordReset, error)
	// MarkUsed flips used=true only if the record is still unused; otherwise ErrNotFound.
	MarkUsed(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID int64) ([]domain.PasswordReset, error)
}

type passwordResetRepository struct {
	db DBTX
}

// NewPasswordResetRepository constructs repository.
func NewPasswordResetRepository(db DBTX) PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

func (r *passwordResetRepository) Create(ctx context.Context, reset *domain.PasswordReset) error {
	const query = `
        INSERT INTO password_resets (user_id, code, expires_at)
        VALUES ($1,$2,$3)
        RETURNING id, used, created_at`
	err := r.db.QueryRow(ctx, query,
		reset.UserID,
		reset.Code,
		reset.ExpiresAt,
	).Scan(&reset.ID, &reset.Used, &reset.CreatedAt)
	return mapError(err)
}

func (r *passwordResetRepository) FindActive(ctx context.Context, userID int64, code string, now time.Time) (*domain.PasswordReset, error) {
	const query = `
        SELECT id, user_id, code, expires_at, used, created_at
        FROM password_resets
        WHERE user_id=$1 AND code=$2 AND used=false AND expires_at >= $3
        ORDER BY created_at DESC
        LIMIT 1
        FOR UPDATE`
	var reset domain.PasswordReset
	if err := r.db.QueryRow(ctx, query, userID, code, now).Scan(
		&reset.ID,
		&reset.UserID,
		&reset.Code,
		&reset.ExpiresAt,
		&reset.Used,
		&reset.CreatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &reset, nil
}

func (r *passwordResetRepository) MarkUsed(ctx context.Context, id int64) error {
	const query = `
        UPDATE password_resets SET used=true
        WHERE id=$1 AND used=false`
	return rowsAffected(r.db.Exec(ctx, query, id))
}

func (r *passwordResetRepository) ListByUser(ctx context.Context, userID int64) ([]domain.PasswordReset, error) {
	const query = `
        SELECT id, user_id, code, expires_at, used, created_at
        FROM password_resets WHERE user_id=$1 ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var result []domain.PasswordReset
	for rows.Next() {
		var reset domain.PasswordReset
		if err := rows.Scan(
			&reset.ID,
			&reset.UserID,
			&reset.Code,
			&reset.ExpiresAt,
			&reset.Used,
			&reset.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, reset)
	}
	return result, rows.Err()
}
