package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewApp builds the Fiber app with the server settings. Path parameters
// are unescaped so /gymgroups/bob/Iron%20Team resolves "Iron Team".
func NewApp(errorHandler fiber.ErrorHandler) *fiber.App {
	return fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: errorHandler,
		UnescapePath: true,
	})
}

func Setup(
	app *fiber.App,
	cfg *config.Config,
	tokens *auth.TokenService,
	users repository.UserRepository,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	userHandler *handlers.UserHandler,
	groupHandler *handlers.GymGroupHandler,
	adminHandler *handlers.AdminHandler,
) {
	if cfg.MetricsEnabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	api := app.Group("/api")
	api.Get("/health", healthHandler.Check)

	// Auth: public, rate limited per IP
	authGroup := api.Group("/auth")
	authGroup.Use(limiter.New(limiter.Config{
		Max:               cfg.AuthRateLimit,
		Expiration:        rateLimitSpan(cfg.AuthRateLimitSpan),
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": true, "message": "Too many requests",
			})
		},
	}))
	authGroup.Post("/signup", authHandler.SignUp)
	authGroup.Post("/signin", authHandler.SignIn)

	authenticate := middleware.Authenticate(tokens, users)

	// Protected resources: any authenticated USER or ADMIN
	usersGroup := app.Group("/users", authenticate, middleware.AnyUser())
	usersGroup.Get("/:username/workouts", userHandler.GetWorkouts)
	usersGroup.Post("/:username/workouts", userHandler.AddWorkout)
	usersGroup.Delete("/:username/workouts/:id", userHandler.DeleteWorkout)
	usersGroup.Get("/:username/weeklytotal", userHandler.WeeklyTotal)

	gymGroups := app.Group("/gymgroups", authenticate, middleware.AnyUser())
	gymGroups.Post("/:username", groupHandler.Create)
	gymGroups.Post("/:username/:groupName", groupHandler.Join)
	gymGroups.Get("/:username", groupHandler.List)

	admin := app.Group("/admin", authenticate, middleware.AdminOnly())
	admin.Get("/logs", adminHandler.Logs)
}

func rateLimitSpan(d time.Duration) time.Duration {
	if d <= 0 {
		return time.Minute
	}
	return d
}
