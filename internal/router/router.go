package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/Williamfew09/youtube-dashboard/internal/handler"
	"github.com/Williamfew09/youtube-dashboard/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Dashboard *handler.DashboardHandler
	Health    *handler.HealthHandler
	Metrics   fiber.Handler
}

// Setup configures the middleware stack and all routes on the given Fiber app.
// limiter may be nil to leave the dashboard route unthrottled.
func Setup(app *fiber.App, h *Handlers, corsOrigins string, limiter *middleware.RateLimiter) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(corsOrigins))

	app.Get("/", handler.Index)

	app.Get("/health", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)

	if h.Metrics != nil {
		app.Get("/metrics", h.Metrics)
	}

	api := app.Group("/api")
	if limiter != nil {
		api.Get("/dashboard", limiter.Handler(), h.Dashboard.GetDashboard)
	} else {
		api.Get("/dashboard", h.Dashboard.GetDashboard)
	}
}
