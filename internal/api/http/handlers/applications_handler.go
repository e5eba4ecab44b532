package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/shiftmatch/jobmatch-service/internal/api/dto"
	"github.com/shiftmatch/jobmatch-service/internal/domain"
	"github.com/shiftmatch/jobmatch-service/internal/service"
)

// ApplicationsHandler manages application and match endpoints.
type ApplicationsHandler struct {
	applications *service.ApplicationService
	matches      *service.MatchService
}

// NewApplicationsHandler constructs handler.
func NewApplicationsHandler(applications *service.ApplicationService, matches *service.MatchService) *ApplicationsHandler {
	return &ApplicationsHandler{applications: applications, matches: matches}
}

// Apply POST /jobs/:id/applications.
func (h *ApplicationsHandler) Apply(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	jobID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.ApplyRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	app, err := h.applications.Apply(c.UserContext(), p.Identity, jobID, req.Message)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewApplicationResponse(app)})
}

// ListMine GET /applications/me.
func (h *ApplicationsHandler) ListMine(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	apps, err := h.applications.ListMine(c.UserContext(), p.Identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewApplicationListResponse(apps)})
}

// ListForJob GET /jobs/:id/applications.
func (h *ApplicationsHandler) ListForJob(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	jobID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	apps, err := h.applications.ListForJob(c.UserContext(), p.Identity.UserID, jobID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewApplicationListResponse(apps)})
}

// Decide PATCH /applications/:id.
func (h *ApplicationsHandler) Decide(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.DecideApplicationRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	app, err := h.applications.Decide(c.UserContext(), p.Identity, id, domain.ApplicationStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewApplicationResponse(app)})
}

// Withdraw DELETE /applications/:id.
func (h *ApplicationsHandler) Withdraw(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.applications.Withdraw(c.UserContext(), p.Identity, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Matches GET /matches/me.
func (h *ApplicationsHandler) Matches(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit", defaultPageSize)
	if err != nil {
		return err
	}
	matches, err := h.matches.ListMine(c.UserContext(), p.Identity.UserID, limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewMatchListResponse(matches)})
}
