package memstore

import (
	"context"
	"time"

	"github.com/shiftmatch/jobmatch-service/internal/domain"
	"github.com/shiftmatch/jobmatch-service/internal/repository"
)

type seekerRepo struct{ s *session }

func (r *seekerRepo) Upsert(_ context.Context, profile *domain.SeekerProfile) error {
	return r.s.run(func(d *dataset, now time.Time) error {
		for id, p := range d.seekers {
			if p.UserID == profile.UserID {
				profile.ID = id
				profile.CreatedAt = p.CreatedAt
				profile.UpdatedAt = now
				d.seekers[id] = *profile
				return nil
			}
		}
		profile.ID = d.nextID("seeker_profiles")
		profile.CreatedAt, profile.UpdatedAt = now, now
		d.seekers[profile.ID] = *profile
		return nil
	})
}

func (r *seekerRepo) GetByUserID(_ context.Context, userID int64) (*domain.SeekerProfile, error) {
	var found *domain.SeekerProfile
	err := r.s.run(func(d *dataset, _ time.Time) error {
		for _, p := range d.seekers {
			if p.UserID == userID {
				found = &p
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return found, err
}

type shopRepo struct{ s *session }

func (r *shopRepo) Upsert(_ context.Context, shop *domain.Shop) error {
	return r.s.run(func(d *dataset, now time.Time) error {
		for id, existing := range d.shops {
			if existing.OwnerID == shop.OwnerID {
				shop.ID = id
				shop.CreatedAt = existing.CreatedAt
				shop.UpdatedAt = now
				d.shops[id] = *shop
				return nil
			}
		}
		shop.ID = d.nextID("shops")
		shop.CreatedAt, shop.UpdatedAt = now, now
		d.shops[shop.ID] = *shop
		return nil
	})
}

func (r *shopRepo) GetByOwnerID(_ context.Context, ownerID int64) (*domain.Shop, error) {
	var found *domain.Shop
	err := r.s.run(func(d *dataset, _ time.Time) error {
		for _, shop := range d.shops {
			if shop.OwnerID == ownerID {
				found = &shop
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return found, err
}

func (r *shopRepo) GetByID(_ context.Context, id int64) (*domain.Shop, error) {
	var found *domain.Shop
	err := r.s.run(func(d *dataset, _ time.Time) error {
		shop, ok := d.shops[id]
		if !ok {
			return repository.ErrNotFound
		}
		found = &shop
		return nil
	})
	return found, err
}
