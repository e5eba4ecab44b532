package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/shiftmatch/jobmatch-service/internal/api/http"
	"github.com/shiftmatch/jobmatch-service/internal/api/http/handlers"
	"github.com/shiftmatch/jobmatch-service/internal/auth"
	"github.com/shiftmatch/jobmatch-service/internal/config"
	"github.com/shiftmatch/jobmatch-service/internal/events"
	"github.com/shiftmatch/jobmatch-service/internal/observability"
	"github.com/shiftmatch/jobmatch-service/internal/persistence"
	"github.com/shiftmatch/jobmatch-service/internal/repository"
	"github.com/shiftmatch/jobmatch-service/internal/repository/memstore"
	"github.com/shiftmatch/jobmatch-service/internal/service"
	"github.com/shiftmatch/jobmatch-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	checks := []handlers.DependencyCheck{}
	var store repository.Store
	if pg.Enabled() {
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.Pool, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		store = repository.NewPostgresStore(pg.Pool)
		checks = append(checks, handlers.DependencyCheck{Name: "postgres", Ping: store.Ping})
	} else {
		store = memstore.New()
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	tokenOpts := []auth.TokenOption{}
	switch {
	case !cfg.Auth.TokenRevocation:
		logger.Info("token revocation disabled; logout is client-side only")
	case redis != nil:
		tokenOpts = append(tokenOpts, auth.WithDenylist(repository.NewRedisTokenDenylist(redis.Client)))
		checks = append(checks, handlers.DependencyCheck{Name: "redis", Ping: redis.Ping})
	default:
		tokenOpts = append(tokenOpts, auth.WithDenylist(auth.NewMemoryDenylist(nil)))
	}
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL(), tokenOpts...)

	dispatcher := events.NewInMemoryDispatcher(logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(service.AuthDependencies{
		Store:      store,
		Tokens:     tokens,
		Hasher:     auth.NewPasswordHasher(cfg.Auth.BcryptCost),
		OTP:        auth.NewOTPGenerator(cfg.Auth.PasswordResetTTL()),
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	workflow := service.WorkflowDependencies{Store: store, Dispatcher: dispatcher, Logger: logger}
	jobService := service.NewJobService(workflow)
	applicationService := service.NewApplicationService(workflow)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, metrics, checks...),
		Auth:           handlers.NewAuthHandler(authService),
		Profiles:       handlers.NewProfileHandler(service.NewProfileService(store)),
		Jobs:           handlers.NewJobsHandler(jobService),
		Applications:   handlers.NewApplicationsHandler(applicationService, service.NewMatchService(store)),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, logger),
		AuthLimiter:    httptransport.NewAuthRateLimiter(cfg.RateLimit),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
