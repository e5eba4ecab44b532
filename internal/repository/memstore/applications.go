package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/shiftmatch/jobmatch-service/internal/domain"
	"github.com/shiftmatch/jobmatch-service/internal/repository"
)

type applicationRepo struct{ s *session }

func (r *applicationRepo) Create(_ context.Context, app *domain.Application) error {
	return r.s.run(func(d *dataset, now time.Time) error {
		if _, ok := d.jobs[app.JobID]; !ok {
			return repository.ErrNotFound
		}
		for _, existing := range d.applications {
			if existing.SeekerID == app.SeekerID && existing.JobID == app.JobID {
				return repository.ErrDuplicate
			}
		}
		app.ID = d.nextID("applications")
		app.AppliedAt, app.UpdatedAt = now, now
		d.applications[app.ID] = *app
		return nil
	})
}

func (r *applicationRepo) GetByID(_ context.Context, id int64) (*domain.Application, error) {
	var found *domain.Application
	err := r.s.run(func(d *dataset, _ time.Time) error {
		app, ok := d.applications[id]
		if !ok {
			return repository.ErrNotFound
		}
		found = &app
		return nil
	})
	return found, err
}

func (r *applicationRepo) GetBySeekerAndJob(_ context.Context, seekerID, jobID int64) (*domain.Application, error) {
	var found *domain.Application
	err := r.s.run(func(d *dataset, _ time.Time) error {
		for _, app := range d.applications {
			if app.SeekerID == seekerID && app.JobID == jobID {
				found = &app
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return found, err
}

func (r *applicationRepo) ListBySeeker(_ context.Context, seekerID int64) ([]domain.Application, error) {
	return r.list(func(a domain.Application) bool { return a.SeekerID == seekerID }, true)
}

func (r *applicationRepo) ListByJob(_ context.Context, jobID int64) ([]domain.Application, error) {
	return r.list(func(a domain.Application) bool { return a.JobID == jobID }, false)
}

func (r *applicationRepo) UpdateStatus(_ context.Context, id int64, from, to domain.ApplicationStatus) error {
	return r.s.run(func(d *dataset, now time.Time) error {
		app, ok := d.applications[id]
		if !ok || app.Status != from {
			return repository.ErrNotFound
		}
		app.Status = to
		app.UpdatedAt = now
		d.applications[id] = app
		return nil
	})
}

func (r *applicationRepo) Delete(_ context.Context, id, seekerID int64) error {
	return r.s.run(func(d *dataset, _ time.Time) error {
		app, ok := d.applications[id]
		if !ok || app.SeekerID != seekerID {
			return repository.ErrNotFound
		}
		delete(d.applications, id)
		return nil
	})
}

func (r *applicationRepo) list(keep func(domain.Application) bool, newestFirst bool) ([]domain.Application, error) {
	var result []domain.Application
	err := r.s.run(func(d *dataset, _ time.Time) error {
		for _, app := range d.applications {
			if keep(app) {
				result = append(result, app)
			}
		}
		sort.Slice(result, func(i, j int) bool {
			if newestFirst {
				return result[i].ID > result[j].ID
			}
			return result[i].ID < result[j].ID
		})
		return nil
	})
	return result, err
}

type matchRepo struct{ s *session }

func (r *matchRepo) ListBySeeker(_ context.Context, seekerID int64, limit int) ([]domain.Match, error) {
	var result []domain.Match
	err := r.s.run(func(d *dataset, _ time.Time) error {
		for _, m := range d.matches {
			if m.SeekerID == seekerID {
				result = append(result, m)
			}
		}
		sort.SliceStable(result, func(i, j int) bool {
			if result[i].Score != result[j].Score {
				return result[i].Score > result[j].Score
			}
			return result[i].JobID < result[j].JobID
		})
		result = page(result, limit, 0)
		return nil
	})
	return result, err
}
