package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/shiftmatch/jobmatch-service/internal/auth"
	apperrors "github.com/shiftmatch/jobmatch-service/pkg/util"
	"github.com/shiftmatch/jobmatch-service/pkg/validation"
)

// principal returns the caller attached by the auth middleware.
func principal(c *fiber.Ctx) (*auth.Principal, error) {
	p, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthenticated("authentication required")
	}
	return p, nil
}

// parseBody decodes an optional JSON body into dst and validates it.
func parseBody(c *fiber.Ctx, dst any) error {
	if len(c.Body()) > 0 {
		if err := c.BodyParser(dst); err != nil {
			return validation.DecodeError(err)
		}
	}
	return validation.Struct(dst)
}

func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, validation.Field("invalid id", name, "id")
	}
	return id, nil
}

func queryInt(c *fiber.Ctx, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, validation.Field("invalid query parameter", name, "number")
	}
	return v, nil
}
