package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shiftmatch/jobmatch-service/internal/api/dto"
	"github.com/shiftmatch/jobmatch-service/internal/service"
)

// ProfileHandler exposes the caller's seeker profile and shop.
type ProfileHandler struct {
	profiles *service.ProfileService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// GetSeeker GET /seekers/me.
func (h *ProfileHandler) GetSeeker(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	profile, err := h.profiles.GetSeekerProfile(c.UserContext(), p.Identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSeekerProfileResponse(profile)})
}

// PutSeeker PUT /seekers/me.
func (h *ProfileHandler) PutSeeker(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.SeekerProfileRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	profile, err := h.profiles.SaveSeekerProfile(c.UserContext(), p.Identity.UserID, service.SeekerProfileInput{
		Name:  req.Name,
		Phone: req.Phone,
		Bio:   req.Bio,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSeekerProfileResponse(profile)})
}

// GetShop GET /shops/me.
func (h *ProfileHandler) GetShop(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	shop, err := h.profiles.GetShop(c.UserContext(), p.Identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewShopResponse(shop)})
}

// PutShop PUT /shops/me.
func (h *ProfileHandler) PutShop(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.ShopRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	shop, err := h.profiles.SaveShop(c.UserContext(), p.Identity.UserID, service.ShopInput{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewShopResponse(shop)})
}
