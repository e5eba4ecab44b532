package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/shiftmatch/jobmatch-service/internal/domain"
	"github.com/shiftmatch/jobmatch-service/internal/repository"
)

type jobRepo struct{ s *session }

func (r *jobRepo) Create(_ context.Context, job *domain.JobPosting) error {
	return r.s.run(func(d *dataset, now time.Time) error {
		if _, ok := d.shops[job.ShopID]; !ok {
			return repository.ErrNotFound
		}
		job.ID = d.nextID("job_postings")
		job.CreatedAt, job.UpdatedAt = now, now
		d.jobs[job.ID] = *job
		return nil
	})
}

func (r *jobRepo) GetByID(_ context.Context, id int64) (*domain.JobPosting, error) {
	var found *domain.JobPosting
	err := r.s.run(func(d *dataset, _ time.Time) error {
		job, ok := d.jobs[id]
		if !ok {
			return repository.ErrNotFound
		}
		found = &job
		return nil
	})
	return found, err
}

func (r *jobRepo) GetForUpdate(ctx context.Context, id int64) (*domain.JobPosting, error) {
	return r.GetByID(ctx, id)
}

func (r *jobRepo) UpdateStatus(_ context.Context, id int64, from, to domain.JobStatus) error {
	return r.s.run(func(d *dataset, now time.Time) error {
		job, ok := d.jobs[id]
		if !ok || job.Status != from {
			return repository.ErrNotFound
		}
		job.Status = to
		job.UpdatedAt = now
		d.jobs[id] = job
		return nil
	})
}

func (r *jobRepo) List(_ context.Context, filter repository.JobFilter) ([]domain.JobPosting, error) {
	var result []domain.JobPosting
	err := r.s.run(func(d *dataset, _ time.Time) error {
		var matched []domain.JobPosting
		for _, job := range d.jobs {
			if filter.ShopID != nil && job.ShopID != *filter.ShopID {
				continue
			}
			if filter.CategoryID != nil && job.CategoryID != *filter.CategoryID {
				continue
			}
			if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, job.Status) {
				continue
			}
			matched = append(matched, job)
		}
		sort.Slice(matched, func(i, j int) bool {
			if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
				return matched[i].CreatedAt.After(matched[j].CreatedAt)
			}
			return matched[i].ID > matched[j].ID
		})
		result = page(matched, filter.Limit, filter.Offset)
		return nil
	})
	return result, err
}

func containsStatus(statuses []domain.JobStatus, s domain.JobStatus) bool {
	for _, candidate := range statuses {
		if candidate == s {
			return true
		}
	}
	return false
}
