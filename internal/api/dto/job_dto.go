package dto

import (
	"time"

	"github.com/shiftmatch/jobmatch-service/internal/domain"
)

// CreateJobRequest payload for POST /jobs.
type CreateJobRequest struct {
	CategoryID        int64     `json:"category_id" validate:"gte=0"`
	Title             string    `json:"title" validate:"required,max=200"`
	Description       string    `json:"description" validate:"max=5000"`
	RequiredHeadcount int       `json:"required_headcount" validate:"required,min=1,max=1000"`
	Wage              int64     `json:"wage" validate:"gte=0"`
	WorkDate          time.Time `json:"work_date" validate:"required"`
}

// UpdateJobStatusRequest payload for PATCH /jobs/:id/status.
type UpdateJobStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open closed completed"`
}

// JobResponse is the public view of a posting.
type JobResponse struct {
	ID                int64            `json:"id"`
	ShopID            int64            `json:"shop_id"`
	CategoryID        int64            `json:"category_id"`
	Title             string           `json:"title"`
	Description       string           `json:"description"`
	Status            domain.JobStatus `json:"status"`
	RequiredHeadcount int              `json:"required_headcount"`
	Wage              int64            `json:"wage"`
	WorkDate          time.Time        `json:"work_date"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

func NewJobResponse(j *domain.JobPosting) JobResponse {
	return JobResponse{
		ID:                j.ID,
		ShopID:            j.ShopID,
		CategoryID:        j.CategoryID,
		Title:             j.Title,
		Description:       j.Description,
		Status:            j.Status,
		RequiredHeadcount: j.RequiredHeadcount,
		Wage:              j.Wage,
		WorkDate:          j.WorkDate,
		CreatedAt:         j.CreatedAt,
		UpdatedAt:         j.UpdatedAt,
	}
}

func NewJobListResponse(jobs []domain.JobPosting) []JobResponse {
	items := make([]JobResponse, 0, len(jobs))
	for i := range jobs {
		items = append(items, NewJobResponse(&jobs[i]))
	}
	return items
}
