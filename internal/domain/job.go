package domain

import "time"

// JobStatus enumerates lifecycle states for job postings.
type JobStatus string

const (
	JobStatusOpen      JobStatus = "open"
	JobStatusClosed    JobStatus = "closed"
	JobStatusCompleted JobStatus = "completed"
)

var jobTransitions = map[JobStatus][]JobStatus{
	JobStatusOpen:   {JobStatusClosed, JobStatusCompleted},
	JobStatusClosed: {JobStatusCompleted},
}

// Valid reports whether s is a known job status.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusOpen, JobStatusClosed, JobStatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether the owner may move a posting from s to next.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	for _, candidate := range jobTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// JobPosting is a shop's listing.
type JobPosting struct {
	ID                int64
	ShopID            int64
	CategoryID        int64
	Title             string
	Description       string
	Status            JobStatus
	RequiredHeadcount int
	Wage              int64
	WorkDate          time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// AcceptsApplications reports whether new applications may be filed.
func (j *JobPosting) AcceptsApplications() bool {
	return j.Status == JobStatusOpen
}
