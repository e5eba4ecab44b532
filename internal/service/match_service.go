package service

import (
	"context"
	"errors"

	"github.com/shiftmatch/jobmatch-service/internal/domain"
	"github.com/shiftmatch/jobmatch-service/internal/repository"
	apperrors "github.com/shiftmatch/jobmatch-service/pkg/util"
)

// MatchService exposes precomputed match scores to the seeker they address.
type MatchService struct {
	store repository.Store
}

// NewMatchService builds the service.
func NewMatchService(store repository.Store) *MatchService {
	return &MatchService{store: store}
}

// ListMine returns the caller's matches by descending score.
func (s *MatchService) ListMine(ctx context.Context, seekerID int64, limit int) ([]domain.Match, error) {
	repos := s.store.Repositories()
	if _, err := repos.Seekers.GetByUserID(ctx, seekerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewProfileRequired("create a seeker profile to see matches")
		}
		return nil, apperrors.NewInternalError(err)
	}

	matches, err := repos.Matches.ListBySeeker(ctx, seekerID, limit)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return matches, nil
}
