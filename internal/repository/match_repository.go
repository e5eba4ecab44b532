package repository

import (
	"context"

	"github.com/shiftmatch/jobmatch-service/internal/domain"
)

// MatchRepository reads precomputed match scores.
type MatchRepository interface {
	// ListBySeeker returns the seeker's matches, highest score first.
	ListBySeeker(ctx context.Context, seekerID int64, limit int) ([]domain.Match, error)
}

type matchRepository struct {
	db DBTX
}

// NewMatchRepository instantiates repository.
func NewMatchRepository(db DBTX) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) ListBySeeker(ctx context.Context, seekerID int64, limit int) ([]domain.Match, error) {
	limit, _ = normalizePage(limit, 0)
	const query = `
        SELECT seeker_id, job_id, score, created_at
        FROM matches WHERE seeker_id=$1
        ORDER BY score DESC, job_id ASC
        LIMIT $2`
	rows, err := r.db.Query(ctx, query, seekerID, limit)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var result []domain.Match
	for rows.Next() {
		var m domain.Match
		if err := rows.Scan(&m.SeekerID, &m.JobID, &m.Score, &m.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}
