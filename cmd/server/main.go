package main

import (
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup(os.Getenv("LOG_LEVEL"))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	stdout := logging.Setup(cfg.LogLevel)

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpiration)
	if err != nil {
		slog.Error("token service init failed", "error", err)
		os.Exit(1)
	}

	// Storage
	var (
		db        *gorm.DB
		users     repository.UserRepository
		groups    repository.GymGroupRepository
		systemLog repository.SystemLogRepository
		ping      database.Pinger
	)
	switch cfg.StoreDriver {
	case config.StoreMemory:
		slog.Warn("using in-memory store; data is lost on restart")
		users = repository.NewMemoryUserRepository()
		groups = repository.NewMemoryGymGroupRepository()
		systemLog = repository.NewMemorySystemLogRepository()
	default:
		db, err = database.Connect(cfg)
		if err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		if cfg.DBAutoMigrate {
			if err := database.Migrate(db); err != nil {
				slog.Error("migration failed", "error", err)
				os.Exit(1)
			}
		}
		users = repository.NewUserRepository(db)
		groups = repository.NewGymGroupRepository(db)
		systemLog = repository.NewSystemLogRepository(db)
		ping = database.PingFunc(db)
	}

	// ERROR+ records are also batched into system_logs
	systemLogHandler := logging.NewSystemLogHandler(systemLog)
	slog.SetDefault(slog.New(logging.NewMultiHandler(stdout, systemLogHandler)))

	cleanupDone := make(chan struct{})
	logging.StartCleanup(systemLog, cfg.LogRetentionDays, cleanupDone)

	metrics.Register()

	// Services
	userService := services.NewUserService(users, auth.NewBcryptHasher(cfg.BcryptCost))
	groupService := services.NewGymGroupService(groups, users)
	authService := services.NewAuthService(userService, tokens)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler(ping)
	userHandler := handlers.NewUserHandler(userService)
	groupHandler := handlers.NewGymGroupHandler(groupService)
	adminHandler := handlers.NewAdminHandler(systemLog)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	app := routes.NewApp(customErrorHandler)

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())
	if cfg.MetricsEnabled {
		app.Use(middleware.Metrics())
	}

	routes.Setup(app, cfg, tokens, users, authHandler, healthHandler, userHandler, groupHandler, adminHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "store", cfg.StoreDriver)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	systemLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if db != nil {
		if err := database.Close(db); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error",
			"method", c.Method(),
			"path", c.Path(),
			"error", err.Error(),
			"request_id", c.Locals("requestid"),
		)
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
