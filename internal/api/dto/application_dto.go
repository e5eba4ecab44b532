package dto

import (
	"time"

	"github.com/shiftmatch/jobmatch-service/internal/domain"
)

// ApplyRequest payload for POST /jobs/:id/applications. The body is optional.
type ApplyRequest struct {
	Message string `json:"message" validate:"max=1000"`
}

// DecideApplicationRequest payload for PATCH /applications/:id.
type DecideApplicationRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

type ApplicationResponse struct {
	ID        int64                    `json:"id"`
	SeekerID  int64                    `json:"seeker_id"`
	JobID     int64                    `json:"job_id"`
	Status    domain.ApplicationStatus `json:"status"`
	Message   string                   `json:"message"`
	AppliedAt time.Time                `json:"applied_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}

type MatchResponse struct {
	JobID     int64     `json:"job_id"`
	Score     float64   `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

func NewApplicationResponse(a *domain.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:        a.ID,
		SeekerID:  a.SeekerID,
		JobID:     a.JobID,
		Status:    a.Status,
		Message:   a.Message,
		AppliedAt: a.AppliedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func NewApplicationListResponse(apps []domain.Application) []ApplicationResponse {
	items := make([]ApplicationResponse, 0, len(apps))
	for i := range apps {
		items = append(items, NewApplicationResponse(&apps[i]))
	}
	return items
}

func NewMatchListResponse(matches []domain.Match) []MatchResponse {
	items := make([]MatchResponse, 0, len(matches))
	for _, m := range matches {
		items = append(items, MatchResponse{JobID: m.JobID, Score: m.Score, CreatedAt: m.CreatedAt})
	}
	return items
}
