// Package memstore is an in-process implementation of repository.Store.
// It enforces the same unique constraints as the SQL schema and gives
// WithinTx all-or-nothing semantics by snapshotting the dataset.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/shiftmatch/jobmatch-service/internal/domain"
	"github.com/shiftmatch/jobmatch-service/internal/repository"
)

// Store holds every table in memory behind one mutex.
type Store struct {
	mu   sync.Mutex
	data *dataset
	now  func() time.Time
}

type dataset struct {
	seq          map[string]int64
	users        map[int64]domain.User
	resets       map[int64]domain.PasswordReset
	seekers      map[int64]domain.SeekerProfile
	shops        map[int64]domain.Shop
	jobs         map[int64]domain.JobPosting
	applications map[int64]domain.Application
	matches      []domain.Match
}

// New returns an empty store.
func New() *Store {
	return &Store{data: newDataset(), now: time.Now}
}

// SetClock overrides the timestamp source for created/updated columns.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// AddMatch records a precomputed match score.
func (s *Store) AddMatch(m domain.Match) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = s.now()
	}
	s.data.matches = append(s.data.matches, m)
}

// Repositories implements repository.Store.
func (s *Store) Repositories() repository.Repositories {
	return s.repos(false)
}

// WithinTx implements repository.Store. The store lock is held for the whole
// transaction, so concurrent transactions are serialized.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	if err := fn(ctx, s.repos(true)); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

// Ping implements repository.Store.
func (s *Store) Ping(context.Context) error {
	return nil
}

func (s *Store) repos(inTx bool) repository.Repositories {
	sess := &session{store: s, inTx: inTx}
	return repository.Repositories{
		Users:          &userRepo{sess},
		PasswordResets: &resetRepo{sess},
		Seekers:        &seekerRepo{sess},
		Shops:          &shopRepo{sess},
		Jobs:           &jobRepo{sess},
		Applications:   &applicationRepo{sess},
		Matches:        &matchRepo{sess},
	}
}

type session struct {
	store *Store
	inTx  bool
}

// run executes fn against the dataset, taking the lock unless the caller
// already holds it through WithinTx.
func (s *session) run(fn func(d *dataset, now time.Time) error) error {
	if !s.inTx {
		s.store.mu.Lock()
		defer s.store.mu.Unlock()
	}
	return fn(s.store.data, s.store.now())
}

func newDataset() *dataset {
	return &dataset{
		seq:          map[string]int64{},
		users:        map[int64]domain.User{},
		resets:       map[int64]domain.PasswordReset{},
		seekers:      map[int64]domain.SeekerProfile{},
		shops:        map[int64]domain.Shop{},
		jobs:         map[int64]domain.JobPosting{},
		applications: map[int64]domain.Application{},
	}
}

func (d *dataset) nextID(table string) int64 {
	d.seq[table]++
	return d.seq[table]
}

func (d *dataset) clone() *dataset {
	c := newDataset()
	for k, v := range d.seq {
		c.seq[k] = v
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.resets {
		c.resets[k] = v
	}
	for k, v := range d.seekers {
		c.seekers[k] = v
	}
	for k, v := range d.shops {
		c.shops[k] = v
	}
	for k, v := range d.jobs {
		c.jobs[k] = v
	}
	for k, v := range d.applications {
		c.applications[k] = v
	}
	c.matches = append([]domain.Match(nil), d.matches...)
	return c
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

func page[T any](items []T, limit, offset int) []T {
	limit, offset = normalizePage(limit, offset)
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
