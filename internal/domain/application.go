package domain

import "time"

// ApplicationStatus enumerates lifecycle states for applications.
type ApplicationStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusAccepted  ApplicationStatus = "accepted"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
	ApplicationStatusWithdrawn ApplicationStatus = "withdrawn"
)

// CanDecide reports whether the owning shop may move an application from s to next.
// Only pending applications can be accepted or rejected.
func (s ApplicationStatus) CanDecide(next ApplicationStatus) bool {
	if s != ApplicationStatusPending {
		return false
	}
	return next == ApplicationStatusAccepted || next == ApplicationStatusRejected
}

// Application is a seeker's request to work a posting.
type Application struct {
	ID        int64
	SeekerID  int64
	JobID     int64
	Status    ApplicationStatus
	Message   string
	AppliedAt time.Time
	UpdatedAt time.Time
}

// Match is a precomputed seeker-to-posting score produced outside this service.
type Match struct {
	SeekerID  int64
	JobID     int64
	Score     float64
	CreatedAt time.Time
}
