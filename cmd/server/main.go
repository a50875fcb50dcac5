package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Williamfew09/youtube-dashboard/internal/config"
	"github.com/Williamfew09/youtube-dashboard/internal/handler"
	"github.com/Williamfew09/youtube-dashboard/internal/metrics"
	"github.com/Williamfew09/youtube-dashboard/internal/middleware"
	"github.com/Williamfew09/youtube-dashboard/internal/repository"
	"github.com/Williamfew09/youtube-dashboard/internal/router"
	"github.com/Williamfew09/youtube-dashboard/internal/service"
	"github.com/Williamfew09/youtube-dashboard/pkg/hash"
)

func main() {
	cfg := config.Load()

	middleware.InitLogger(cfg.LogLevel, cfg.ServiceName)
	log := middleware.Logger

	for _, w := range cfg.Warnings() {
		log.Warn().Msg(w)
	}
	if cfg.ChannelID != "" {
		if _, errMsg := repository.ValidateChannelID(cfg.ChannelID); errMsg != "" {
			log.Warn().Str("channel_id", cfg.ChannelID).Msg(errMsg)
		}
	}

	metrics.Register(prometheus.DefaultRegisterer)

	sheets := repository.NewSheetRepo(cfg.SheetsBaseURL, cfg.SheetID, cfg.SheetName, cfg.UpstreamTimeout, middleware.Component("sheets"))
	youtube := repository.NewYouTubeRepo(cfg.YouTubeBaseURL, cfg.YouTubeAPIKey, cfg.ChannelID, cfg.UpstreamTimeout, middleware.Component("youtube"))
	dashboard := service.NewDashboardService(sheets, youtube, cfg.StrictDates, middleware.Component("dashboard"))

	cacheKey := hash.CacheKey("dashboard:snapshot", cfg.SheetID, cfg.SheetName, cfg.ChannelID)
	cache := service.NewCacheService(dashboard, cfg.CacheTTL, cfg.RedisURL, cacheKey, middleware.Component("cache"))
	defer cache.Close()

	limiter := middleware.NewDashboardRateLimiter(cfg.RateLimitPerMinute)
	if limiter != nil {
		defer limiter.Stop()
	}

	app := fiber.New(fiber.Config{
		AppName:      "YouTube Dashboard",
		ServerHeader: "youtube-dashboard",
	})

	router.Setup(app, &router.Handlers{
		Dashboard: handler.NewDashboardHandler(cache, middleware.Component("http")),
		Health:    handler.NewHealthHandler(cfg.ServiceName, cfg.ServiceVersion, cache.Client()),
		Metrics:   handler.MetricsHandler(prometheus.DefaultGatherer),
	}, cfg.CORSOrigins, limiter)

	// SIGHUP drops the cached snapshot; SIGINT/SIGTERM shut down.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		for sig := range sigCh {
			if sig == syscall.SIGHUP {
				if err := cache.Invalidate(context.Background()); err != nil {
					log.Warn().Err(err).Msg("cache: invalidate failed")
					continue
				}
				log.Info().Msg("cache: snapshot invalidated (SIGHUP)")
				continue
			}
			log.Info().Str("signal", sig.String()).Msg("shutting down")
			if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
				log.Error().Err(err).Msg("shutdown failed")
			}
			return
		}
	}()

	log.Info().
		Str("port", cfg.Port).
		Str("env", cfg.Environment).
		Dur("cache_ttl", cfg.CacheTTL).
		Msg("youtube dashboard starting")

	if err := app.Listen(":"+cfg.Port, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
