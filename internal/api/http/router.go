package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shiftmatch/jobmatch-service/internal/api/http/handlers"
	"github.com/shiftmatch/jobmatch-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Profiles       *handlers.ProfileHandler
	Jobs           *handlers.JobsHandler
	Applications   *handlers.ApplicationsHandler
	AuthMiddleware *auth.AuthMiddleware
	// AuthLimiter throttles login and password endpoints. Nil disables it.
	AuthLimiter fiber.Handler
}

// RegisterRoutes wires HTTP routes. Authentication is attached per route
// because a fiber group middleware would also cover the public siblings.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	limiter := cfg.AuthLimiter
	if limiter == nil {
		limiter = func(c *fiber.Ctx) error { return c.Next() }
	}
	authn := cfg.AuthMiddleware.Handle
	seeker := auth.RequireSeeker()
	owner := auth.RequireShopOwner()

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", limiter, cfg.Auth.Login)
	authGroup.Post("/password/forgot", limiter, cfg.Auth.ForgotPassword)
	authGroup.Post("/password/reset", limiter, cfg.Auth.ResetPassword)
	authGroup.Get("/me", authn, cfg.Auth.Me)
	authGroup.Post("/logout", authn, cfg.Auth.Logout)
	authGroup.Post("/password/change", limiter, authn, cfg.Auth.ChangePassword)
	authGroup.Post("/deactivate", authn, cfg.Auth.Deactivate)

	seekers := app.Group("/seekers", authn, seeker)
	seekers.Get("/me", cfg.Profiles.GetSeeker)
	seekers.Put("/me", cfg.Profiles.PutSeeker)

	shops := app.Group("/shops", authn, owner)
	shops.Get("/me", cfg.Profiles.GetShop)
	shops.Put("/me", cfg.Profiles.PutShop)
	shops.Get("/me/jobs", cfg.Jobs.ListMine)

	jobs := app.Group("/jobs")
	jobs.Get("/", cfg.Jobs.List)
	jobs.Get("/:id", cfg.Jobs.Get)
	jobs.Post("/", authn, owner, cfg.Jobs.Create)
	jobs.Patch("/:id/status", authn, owner, cfg.Jobs.UpdateStatus)
	jobs.Post("/:id/applications", authn, seeker, cfg.Applications.Apply)
	jobs.Get("/:id/applications", authn, owner, cfg.Applications.ListForJob)

	applications := app.Group("/applications")
	applications.Get("/me", authn, seeker, cfg.Applications.ListMine)
	applications.Patch("/:id", authn, owner, cfg.Applications.Decide)
	applications.Delete("/:id", authn, seeker, cfg.Applications.Withdraw)

	app.Get("/matches/me", authn, seeker, cfg.Applications.Matches)
}
