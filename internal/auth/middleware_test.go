package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftmatch/jobmatch-service/internal/domain"
	apperrors "github.com/shiftmatch/jobmatch-service/pkg/util"
)

func newTestApp(tm *TokenManager, handlers ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": fiber.Map{"code": de.Code, "message": de.Message}})
		},
	})
	chain := append([]fiber.Handler{NewAuthMiddleware(tm, nil).Handle}, handlers...)
	chain = append(chain, func(c *fiber.Ctx) error {
		p, ok := PrincipalFromContext(c)
		if !ok {
			return c.SendStatus(http.StatusTeapot)
		}
		return c.JSON(fiber.Map{"id": p.Identity.UserID, "email": p.Identity.Email, "role": p.Identity.Role})
	})
	app.Get("/", chain...)
	return app
}

func doRequest(t *testing.T, app *fiber.App, header string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body
}

func errorCode(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func TestAuthMissingHeader(t *testing.T) {
	app := newTestApp(NewTokenManager("k", time.Hour))

	status, body := doRequest(t, app, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, apperrors.CodeUnauthenticated, errorCode(body))
}

func TestAuthMalformedPrefix(t *testing.T) {
	tm := NewTokenManager("k", time.Hour)
	tok, err := tm.Issue(seeker)
	require.NoError(t, err)
	app := newTestApp(tm)

	for _, header := range []string{tok.Value, "Basic " + tok.Value, "Bearer", "Bearer   "} {
		status, body := doRequest(t, app, header)
		assert.Equal(t, http.StatusUnauthorized, status, header)
		assert.Equal(t, apperrors.CodeUnauthenticated, errorCode(body), header)
	}
}

func TestAuthInvalidAndExpiredLookTheSame(t *testing.T) {
	clock := newClock()
	tm := NewTokenManager("k", time.Minute, WithClock(clock.Now))
	expired, err := tm.Issue(seeker)
	require.NoError(t, err)
	clock.Advance(time.Hour)
	app := newTestApp(tm)

	expiredStatus, expiredBody := doRequest(t, app, "Bearer "+expired.Value)
	invalidStatus, invalidBody := doRequest(t, app, "Bearer not-a-token")

	assert.Equal(t, http.StatusUnauthorized, expiredStatus)
	assert.Equal(t, expiredStatus, invalidStatus)
	assert.Equal(t, expiredBody, invalidBody)
}

func TestAuthRevokedToken(t *testing.T) {
	tm := NewTokenManager("k", time.Hour, WithDenylist(NewMemoryDenylist(nil)))
	tok, err := tm.Issue(seeker)
	require.NoError(t, err)
	claims, err := tm.Verify(context.Background(), tok.Value)
	require.NoError(t, err)
	require.NoError(t, tm.Revoke(context.Background(), claims))

	status, _ := doRequest(t, newTestApp(tm), "Bearer "+tok.Value)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAuthValidTokenAttachesIdentity(t *testing.T) {
	tm := NewTokenManager("k", time.Hour)
	tok, err := tm.Issue(seeker)
	require.NoError(t, err)

	status, body := doRequest(t, newTestApp(tm), "bearer "+tok.Value)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 7, body["id"])
	assert.Equal(t, "a@x.com", body["email"])
	assert.Equal(t, "job_seeker", body["role"])
}

func TestRequireRoleForbidden(t *testing.T) {
	tm := NewTokenManager("k", time.Hour)
	tok, err := tm.Issue(seeker)
	require.NoError(t, err)

	status, body := doRequest(t, newTestApp(tm, RequireShopOwner()), "Bearer "+tok.Value)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, apperrors.CodeForbidden, errorCode(body))

	status, _ = doRequest(t, newTestApp(tm, RequireRole(domain.RoleShopOwner, domain.RoleJobSeeker)), "Bearer "+tok.Value)
	assert.Equal(t, http.StatusOK, status)
}

func TestRequireRoleWithoutIdentity(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).SendString(de.Code)
		},
	})
	app.Get("/", RequireSeeker(), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
