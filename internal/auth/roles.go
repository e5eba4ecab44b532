package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shiftmatch/jobmatch-service/internal/domain"
	apperrors "github.com/shiftmatch/jobmatch-service/pkg/util"
)

// RequireRole ensures the authenticated caller has one of the allowed roles.
// It must run after AuthMiddleware.Handle.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthenticated("authentication required")
		}
		if _, exists := allowedSet[principal.Identity.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireSeeker is RequireRole(domain.RoleJobSeeker).
func RequireSeeker() fiber.Handler {
	return RequireRole(domain.RoleJobSeeker)
}

// RequireShopOwner is RequireRole(domain.RoleShopOwner).
func RequireShopOwner() fiber.Handler {
	return RequireRole(domain.RoleShopOwner)
}
