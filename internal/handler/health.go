package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
)

type HealthHandler struct {
	service string
	version string
	rdb     *redis.Client
	startAt time.Time
}

// NewHealthHandler creates the health endpoints. rdb may be nil when the
// shared cache is disabled.
func NewHealthHandler(service, version string, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{
		service: service,
		version: version,
		rdb:     rdb,
		startAt: time.Now(),
	}
}

// Live handles GET /health: liveness probe. Never touches upstreams.
func (h *HealthHandler) Live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": h.service,
		"version": h.version,
	})
}

// Ready handles GET /health/ready: readiness probe with dependency checks.
// Upstream APIs are not probed: they degrade rather than fail requests.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	redisCheck := checkRedis(ctx, h.rdb)
	overallStatus := "healthy"
	if redisCheck["status"] == "down" {
		overallStatus = "degraded"
	}

	resp := fiber.Map{
		"status":         overallStatus,
		"checks":         fiber.Map{"redis": redisCheck},
		"uptime_seconds": int(time.Since(h.startAt).Seconds()),
		"service":        h.service,
		"version":        h.version,
	}

	status := fiber.StatusOK
	if overallStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(resp)
}

func checkRedis(ctx context.Context, rdb *redis.Client) fiber.Map {
	if rdb == nil {
		return fiber.Map{
			"status": "disabled",
		}
	}

	start := time.Now()
	err := rdb.Ping(ctx).Err()
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return fiber.Map{
			"status":     "down",
			"latency_ms": latency,
			"error":      "connection failed",
		}
	}
	return fiber.Map{
		"status":     "up",
		"latency_ms": latency,
	}
}
