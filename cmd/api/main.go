// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aurafinsurance/insurance-backend/internal/admin"
	"github.com/aurafinsurance/insurance-backend/internal/agentapp"
	"github.com/aurafinsurance/insurance-backend/internal/audit"
	"github.com/aurafinsurance/insurance-backend/internal/auth"
	"github.com/aurafinsurance/insurance-backend/internal/commission"
	"github.com/aurafinsurance/insurance-backend/internal/config"
	"github.com/aurafinsurance/insurance-backend/internal/contact"
	"github.com/aurafinsurance/insurance-backend/internal/core"
	"github.com/aurafinsurance/insurance-backend/internal/document"
	"github.com/aurafinsurance/insurance-backend/internal/health"
	"github.com/aurafinsurance/insurance-backend/internal/jobs"
	"github.com/aurafinsurance/insurance-backend/internal/middleware"
	"github.com/aurafinsurance/insurance-backend/internal/notify"
	"github.com/aurafinsurance/insurance-backend/internal/policy"
	"github.com/aurafinsurance/insurance-backend/internal/provisioning"
	"github.com/aurafinsurance/insurance-backend/internal/quote"
	"github.com/aurafinsurance/insurance-backend/internal/review"
	"github.com/aurafinsurance/insurance-backend/internal/server"
	"github.com/aurafinsurance/insurance-backend/internal/user"
	"github.com/aurafinsurance/insurance-backend/internal/wizard"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen,gocyclo // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log, cfg.IsDevelopment())
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	if cfg.Database.MigrateOnStart {
		if err := core.Migrate(cfg.Database.URL, logger); err != nil {
			return err
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	documents, err := document.NewStore(cfg.Documents)
	if err != nil {
		return err
	}

	mailer := notify.NewMailer(cfg.Email, logger)
	notifySvc := notify.NewService(mailer, logger)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)

	authRepo := auth.NewRepository(db.DB)
	authSvc := auth.NewService(authRepo, jwtManager, userSvc, redis.Client)
	userSvc.SetSessionRevoker(authSvc)

	policyRepo := policy.NewRepository(db.DB)
	policySvc := policy.NewService(policyRepo, cfg.Catalog)

	quoteRepo := quote.NewRepository(db.DB)
	quoteSvc := quote.NewService(quoteRepo, policySvc)

	contactRepo := contact.NewRepository(db.DB)
	contactSvc := contact.NewService(contactRepo)

	applicationRepo := agentapp.NewRepository(db.DB)
	applicationSvc := agentapp.NewService(applicationRepo, documents)

	provisioningSvc := provisioning.NewService(
		userSvc,
		applicationRepo,
		notifySvc,
		authSvc,
		cfg.Email.LoginURL,
		logger,
	)

	reviewSvc := review.NewService(
		applicationRepo,
		contactRepo,
		quoteRepo,
		notifySvc,
		provisioningSvc,
		documents,
		logger,
	)

	wizardSvc := wizard.NewService(
		wizard.NewRedisDraftStore(redis.Client, cfg.Wizard.DraftTTL),
		policySvc,
		quoteSvc,
		applicationSvc,
	)

	commissionSvc := commission.NewService(commission.NewRepository(db.DB))

	scheduler, err := jobs.NewScheduler(cfg.Jobs, jobs.Deps{
		Tokens:     authSvc,
		References: applicationSvc,
		Documents:  documents,
		OrphanAge:  cfg.Documents.OrphanAge,
	}, logger)
	if err != nil {
		return err
	}

	healthHandler := health.NewHandler(
		health.Dependency{Name: "database", Checker: db},
		health.Dependency{Name: "redis", Checker: redis},
		health.Dependency{Name: "documents", Checker: documents},
	)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		Analytics: admin.NewAnalyticsRepository(db.DB),
		AuditLog:  audit.NewRepository(db.DB),
		Backends: []admin.Backend{
			admin.PostgresBackend(db.Ping, db.Stats),
			admin.RedisBackend(redis.Ping, redis.PoolStats),
			{Name: "documents", Ping: documents.Ping},
		},
	})

	authHandler := auth.NewHandler(authSvc)
	userHandler := user.NewHandler(userSvc)
	policyHandler := policy.NewHandler(policySvc)
	quoteHandler := quote.NewHandler(quoteSvc)
	contactHandler := contact.NewHandler(contactSvc)
	applicationHandler := agentapp.NewHandler(applicationSvc)
	documentHandler := document.NewHandler(documents)
	wizardHandler := wizard.NewHandler(wizardSvc)
	reviewHandler := review.NewHandler(reviewSvc)
	provisioningHandler := provisioning.NewHandler(provisioningSvc)
	notifyHandler := notify.NewHandler(notifySvc)
	commissionHandler := commission.NewHandler(commissionSvc)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Metrics)
	router.Use(middleware.GlobalLimiter(
		redis.Client,
		cfg.RateLimit.Requests,
		cfg.RateLimit.Burst,
		cfg.RateLimit.Window,
	).Handler)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Handle("/metrics", promhttp.Handler())
	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	verifyToken := middleware.Authenticator(authSvc)
	roleLimit := middleware.RoleRateLimiter(redis.Client, middleware.DefaultRoleLimits)
	authenticator := func(next http.Handler) http.Handler {
		return verifyToken(roleLimit(next))
	}
	adminOnly := middleware.RequireAdmin
	intakeLimit := middleware.IntakeLimiter(
		redis.Client,
		cfg.RateLimit.IntakeRequests,
		cfg.RateLimit.IntakeBurst,
	)

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator, intakeLimit)

		userHandler.RegisterRoutes(r, authenticator)
		userHandler.RegisterAdminRoutes(r, authenticator, adminOnly)

		policyHandler.RegisterRoutes(r)
		policyHandler.RegisterAdminRoutes(r, authenticator, adminOnly)

		quoteHandler.RegisterRoutes(r, intakeLimit)
		contactHandler.RegisterRoutes(r, intakeLimit)
		applicationHandler.RegisterRoutes(r, intakeLimit)
		documentHandler.RegisterRoutes(r, intakeLimit)
		wizardHandler.RegisterRoutes(r, intakeLimit)

		reviewHandler.RegisterRoutes(r, authenticator, adminOnly)
		commissionHandler.RegisterRoutes(r, authenticator, adminOnly)
		adminHandler.RegisterRoutes(r, authenticator, adminOnly)

		r.Route("/functions", func(r chi.Router) {
			r.Use(authenticator)

			provisioningHandler.RegisterRoutes(r, adminOnly)
			notifyHandler.RegisterRoutes(r, adminOnly)
		})
	})

	if cfg.Jobs.Enabled {
		scheduler.Start()
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if cfg.Jobs.Enabled {
		scheduler.Stop(shutdownCtx)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig, addSource bool) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level, AddSource: addSource}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
