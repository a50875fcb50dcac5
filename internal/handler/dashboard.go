package handler

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"

	"github.com/Williamfew09/youtube-dashboard/internal/middleware"
	"github.com/Williamfew09/youtube-dashboard/internal/model"
)

// SnapshotGetter returns the current dashboard snapshot.
type SnapshotGetter interface {
	Get(ctx context.Context) (*model.DashboardSnapshot, error)
}

type DashboardHandler struct {
	cache SnapshotGetter
	log   zerolog.Logger
}

func NewDashboardHandler(cache SnapshotGetter, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{cache: cache, log: log}
}

// GetDashboard handles GET /api/dashboard
func (h *DashboardHandler) GetDashboard(c fiber.Ctx) error {
	snap, err := h.cache.Get(c.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("dashboard: snapshot unavailable")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build dashboard data")
	}
	return c.JSON(snap)
}
