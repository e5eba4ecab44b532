package domain

import "time"

// Role is the capability class fixed at registration.
type Role string

const (
	RoleJobSeeker Role = "job_seeker"
	RoleShopOwner Role = "shop_owner"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleJobSeeker || r == RoleShopOwner
}

// User is the persisted identity record.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
