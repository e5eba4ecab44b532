package repository

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no row matches, or a conditional update matched nothing.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate record")
)

// Repositories bundles every repository bound to one connection or transaction.
type Repositories struct {
	Users          UserRepository
	PasswordResets PasswordResetRepository
	Seekers        SeekerRepository
	Shops          ShopRepository
	Jobs           JobRepository
	Applications   ApplicationRepository
	Matches        MatchRepository
}

// Store is the credential and workflow store.
type Store interface {
	// Repositories returns repositories that run each call on its own.
	Repositories() Repositories
	// WithinTx runs fn in one transaction. Any error from fn rolls back every write.
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
	Ping(ctx context.Context) error
}
