package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/shiftmatch/jobmatch-service/internal/domain"
	apperrors "github.com/shiftmatch/jobmatch-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	Identity domain.Identity
	Claims   *Claims
}

// AuthMiddleware validates bearer tokens and attaches the caller identity.
// It never touches the credential store.
type AuthMiddleware struct {
	tokens *TokenManager
	logger *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{tokens: tokens, logger: logger}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthenticated("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return apperrors.NewUnauthenticated("invalid authorization header")
	}

	claims, err := m.tokens.Verify(c.UserContext(), strings.TrimSpace(parts[1]))
	if err != nil {
		m.logVerifyFailure(c, err)
		return apperrors.NewUnauthenticated("invalid or expired token")
	}

	c.Locals(principalKey, &Principal{Identity: claims.Identity(), Claims: claims})
	return c.Next()
}

func (m *AuthMiddleware) logVerifyFailure(c *fiber.Ctx, err error) {
	reason := "invalid"
	switch {
	case errors.Is(err, ErrExpiredToken):
		reason = "expired"
	case errors.Is(err, ErrRevokedToken):
		reason = "revoked"
	case !errors.Is(err, ErrInvalidToken):
		m.logger.Error("token verification failed", zap.String("path", c.Path()), zap.Error(err))
		return
	}
	m.logger.Debug("token rejected", zap.String("path", c.Path()), zap.String("reason", reason))
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
