package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/shiftmatch/jobmatch-service/internal/domain"
	"github.com/shiftmatch/jobmatch-service/internal/repository"
)

type resetRepo struct{ s *session }

func (r *resetRepo) Create(_ context.Context, reset *domain.PasswordReset) error {
	return r.s.run(func(d *dataset, now time.Time) error {
		if _, ok := d.users[reset.UserID]; !ok {
			return repository.ErrNotFound
		}
		reset.ID = d.nextID("password_resets")
		reset.Used = false
		reset.CreatedAt = now
		d.resets[reset.ID] = *reset
		return nil
	})
}

func (r *resetRepo) FindActive(_ context.Context, userID int64, code string, now time.Time) (*domain.PasswordReset, error) {
	var found *domain.PasswordReset
	err := r.s.run(func(d *dataset, _ time.Time) error {
		for _, rec := range d.resets {
			if rec.UserID != userID || rec.Code != code || !rec.Usable(now) {
				continue
			}
			if found == nil || rec.CreatedAt.After(found.CreatedAt) ||
				(rec.CreatedAt.Equal(found.CreatedAt) && rec.ID > found.ID) {
				rec := rec
				found = &rec
			}
		}
		if found == nil {
			return repository.ErrNotFound
		}
		return nil
	})
	return found, err
}

func (r *resetRepo) MarkUsed(_ context.Context, id int64) error {
	return r.s.run(func(d *dataset, _ time.Time) error {
		rec, ok := d.resets[id]
		if !ok || rec.Used {
			return repository.ErrNotFound
		}
		rec.Used = true
		d.resets[id] = rec
		return nil
	})
}

func (r *resetRepo) ListByUser(_ context.Context, userID int64) ([]domain.PasswordReset, error) {
	var result []domain.PasswordReset
	err := r.s.run(func(d *dataset, _ time.Time) error {
		for _, rec := range d.resets {
			if rec.UserID == userID {
				result = append(result, rec)
			}
		}
		sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
		return nil
	})
	return result, err
}
