package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/shiftmatch/jobmatch-service/internal/api/dto"
	"github.com/shiftmatch/jobmatch-service/internal/domain"
	"github.com/shiftmatch/jobmatch-service/internal/service"
	"github.com/shiftmatch/jobmatch-service/pkg/validation"
)

const defaultPageSize = 20

// JobsHandler manages job posting endpoints.
type JobsHandler struct {
	jobs *service.JobService
}

// NewJobsHandler constructs handler.
func NewJobsHandler(jobs *service.JobService) *JobsHandler {
	return &JobsHandler{jobs: jobs}
}

// Create POST /jobs.
func (h *JobsHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.CreateJobRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	job, err := h.jobs.CreateJob(c.UserContext(), p.Identity.UserID, service.JobCreateInput{
		CategoryID:        req.CategoryID,
		Title:             req.Title,
		Description:       req.Description,
		RequiredHeadcount: req.RequiredHeadcount,
		Wage:              req.Wage,
		WorkDate:          req.WorkDate,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewJobResponse(job)})
}

// List GET /jobs. Only open postings unless ?status= names others.
func (h *JobsHandler) List(c *fiber.Ctx) error {
	filter, err := parseJobQuery(c)
	if err != nil {
		return err
	}
	jobs, err := h.jobs.ListJobs(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewJobListResponse(jobs)})
}

// Get GET /jobs/:id.
func (h *JobsHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	job, err := h.jobs.GetJob(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewJobResponse(job)})
}

// ListMine GET /shops/me/jobs.
func (h *JobsHandler) ListMine(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	limit, offset, err := parsePage(c)
	if err != nil {
		return err
	}
	jobs, err := h.jobs.ListShopJobs(c.UserContext(), p.Identity.UserID, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewJobListResponse(jobs)})
}

// UpdateStatus PATCH /jobs/:id/status.
func (h *JobsHandler) UpdateStatus(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateJobStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	job, err := h.jobs.TransitionStatus(c.UserContext(), p.Identity, id, domain.JobStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewJobResponse(job)})
}

func parseJobQuery(c *fiber.Ctx) (service.JobListFilter, error) {
	var filter service.JobListFilter
	if raw := c.Query("status"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				filter.Statuses = append(filter.Statuses, domain.JobStatus(part))
			}
		}
	}
	if raw := c.Query("category_id"); raw != "" {
		categoryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, validation.Field("invalid query parameter", "category_id", "number")
		}
		filter.CategoryID = &categoryID
	}
	limit, offset, err := parsePage(c)
	if err != nil {
		return filter, err
	}
	filter.Limit, filter.Offset = limit, offset
	return filter, nil
}

// parsePage turns 1-based ?page=&page_size= into limit/offset.
func parsePage(c *fiber.Ctx) (int, int, error) {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		return 0, 0, err
	}
	size, err := queryInt(c, "page_size", defaultPageSize)
	if err != nil {
		return 0, 0, err
	}
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = defaultPageSize
	}
	return size, (page - 1) * size, nil
}
