package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ludika/ludika-api/internal/config"
	"github.com/ludika/ludika-api/internal/handler"
	"github.com/ludika/ludika-api/internal/middleware"
	"github.com/ludika/ludika-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	ProgressHandler *handler.ProgressHandler
	StudentHandler  *handler.StudentHandler
	ReportHandler   *handler.ReportHandler
	SeedHandler     *handler.SeedHandler
	JWTMiddleware   fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	// Common v1 group for health & headers
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	// Course rollups are for teachers and admins only.
	if deps.ProgressHandler != nil {
		courses := app.Group("/api/v2/courses", jwtMiddleware, middleware.RequireRole("teacher", "admin"))
		deps.ProgressHandler.Register(courses)
	}

	// Per-student statistics, progress and reports.
	if deps.StudentHandler != nil || deps.ReportHandler != nil {
		students := app.Group("/api/v2/students", jwtMiddleware)
		if deps.StudentHandler != nil {
			deps.StudentHandler.Register(students)
		}
		if deps.ReportHandler != nil {
			// Report generation calls out to an LLM; throttle it per user.
			reports := students.Group("", middleware.RateLimit("student-report", 5, time.Minute))
			deps.ReportHandler.Register(reports)
		}
	}

	// Seeding tools (token guarded inside the service).
	if deps.SeedHandler != nil {
		seed := app.Group("/api/v2/seed")
		deps.SeedHandler.Register(seed)
	}
}
