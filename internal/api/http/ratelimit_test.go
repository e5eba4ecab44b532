package http

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/shiftmatch/jobmatch-service/internal/config"
	"github.com/shiftmatch/jobmatch-service/internal/observability"
)

func TestIPRateLimiterBurstThenRefill(t *testing.T) {
	now := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	l := newIPRateLimiter(rate.Every(time.Second), 2, func() time.Time { return now })

	assert.True(t, l.allow("10.0.0.1"))
	assert.True(t, l.allow("10.0.0.1"))
	assert.False(t, l.allow("10.0.0.1"))
	assert.True(t, l.allow("10.0.0.2"), "buckets are per client")

	now = now.Add(time.Second)
	assert.True(t, l.allow("10.0.0.1"))
}

func TestIPRateLimiterForgetsIdleClients(t *testing.T) {
	now := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	l := newIPRateLimiter(rate.Every(time.Minute), 1, func() time.Time { return now })

	l.allow("10.0.0.1")
	now = now.Add(limiterIdleTTL + time.Minute)
	l.allow("10.0.0.2")

	assert.NotContains(t, l.clients, "10.0.0.1")
	assert.Contains(t, l.clients, "10.0.0.2")
}

func TestAuthRateLimiterRendersRateLimited(t *testing.T) {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	app.Post("/auth/login", NewAuthRateLimiter(config.RateLimitConfig{AuthRequestsPerMinute: 1, AuthBurst: 1}),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	resp, err := app.Test(httptest.NewRequest("POST", "/auth/login", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("POST", "/auth/login", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "60", resp.Header.Get("Retry-After"))
}
