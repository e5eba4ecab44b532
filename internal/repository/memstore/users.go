package memstore

import (
	"context"
	"time"

	"github.com/shiftmatch/jobmatch-service/internal/domain"
	"github.com/shiftmatch/jobmatch-service/internal/repository"
)

type userRepo struct{ s *session }

func (r *userRepo) Create(_ context.Context, user *domain.User) error {
	return r.s.run(func(d *dataset, now time.Time) error {
		for _, u := range d.users {
			if u.Email == user.Email {
				return repository.ErrDuplicate
			}
		}
		user.ID = d.nextID("users")
		user.CreatedAt, user.UpdatedAt = now, now
		d.users[user.ID] = *user
		return nil
	})
}

func (r *userRepo) Update(_ context.Context, user *domain.User) error {
	return r.s.run(func(d *dataset, now time.Time) error {
		existing, ok := d.users[user.ID]
		if !ok {
			return repository.ErrNotFound
		}
		for id, u := range d.users {
			if id != user.ID && u.Email == user.Email {
				return repository.ErrDuplicate
			}
		}
		existing.Email = user.Email
		existing.PasswordHash = user.PasswordHash
		existing.Active = user.Active
		existing.UpdatedAt = now
		d.users[user.ID] = existing
		user.UpdatedAt = now
		return nil
	})
}

func (r *userRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	var found *domain.User
	err := r.s.run(func(d *dataset, _ time.Time) error {
		u, ok := d.users[id]
		if !ok {
			return repository.ErrNotFound
		}
		found = &u
		return nil
	})
	return found, err
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	var found *domain.User
	err := r.s.run(func(d *dataset, _ time.Time) error {
		for _, u := range d.users {
			if u.Email == email {
				found = &u
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return found, err
}
