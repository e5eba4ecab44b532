package http

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/shiftmatch/jobmatch-service/internal/config"
	apperrors "github.com/shiftmatch/jobmatch-service/pkg/util"
)

const limiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipRateLimiter keeps one token bucket per client IP and forgets idle clients.
type ipRateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	limit     rate.Limit
	burst     int
	now       func() time.Time
	lastSweep time.Time
}

// NewAuthRateLimiter throttles credential endpoints per client IP. A
// non-positive rate disables throttling.
func NewAuthRateLimiter(cfg config.RateLimitConfig) fiber.Handler {
	if cfg.AuthRequestsPerMinute <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	burst := cfg.AuthBurst
	if burst <= 0 {
		burst = 1
	}
	l := newIPRateLimiter(rate.Limit(float64(cfg.AuthRequestsPerMinute)/60), burst, time.Now)
	return l.handle
}

func newIPRateLimiter(limit rate.Limit, burst int, now func() time.Time) *ipRateLimiter {
	return &ipRateLimiter{
		clients:   make(map[string]*clientLimiter),
		limit:     limit,
		burst:     burst,
		now:       now,
		lastSweep: now(),
	}
}

func (l *ipRateLimiter) handle(c *fiber.Ctx) error {
	if !l.allow(c.IP()) {
		return apperrors.NewRateLimited()
	}
	return c.Next()
}

func (l *ipRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > limiterIdleTTL {
		for key, client := range l.clients {
			if now.Sub(client.lastSeen) > limiterIdleTTL {
				delete(l.clients, key)
			}
		}
		l.lastSweep = now
	}

	client, ok := l.clients[ip]
	if !ok {
		client = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = client
	}
	client.lastSeen = now
	return client.limiter.AllowN(now, 1)
}
