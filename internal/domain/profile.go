package domain

import "time"

// SeekerProfile is the job seeker's marketplace profile. One per user.
type SeekerProfile struct {
	ID        int64
	UserID    int64
	Name      string
	Phone     string
	Bio       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Shop is the business a shop owner posts jobs for. One per owner.
type Shop struct {
	ID        int64
	OwnerID   int64
	Name      string
	Address   string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
