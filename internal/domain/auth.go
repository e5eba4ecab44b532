package domain

import "time"

// Identity is what a verified session token proves about the caller.
type Identity struct {
	UserID int64
	Email  string
	Role   Role
}

// Token represents issued session token metadata.
type Token struct {
	ID        string
	Value     string
	Identity  Identity
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// PasswordReset is a one-time recovery code issued for a user.
type PasswordReset struct {
	ID        int64
	UserID    int64
	Code      string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

// Usable reports whether the record can still be consumed at now.
func (p PasswordReset) Usable(now time.Time) bool {
	return !p.Used && !now.After(p.ExpiresAt)
}
