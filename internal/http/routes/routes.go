package routes

import (
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/jdverbeke/cinevault-server-go/internal/features/auth"
	"github.com/jdverbeke/cinevault-server-go/internal/features/catalog"
	"github.com/jdverbeke/cinevault-server-go/internal/features/dashboard"
	"github.com/jdverbeke/cinevault-server-go/internal/features/favorite"
	"github.com/jdverbeke/cinevault-server-go/internal/features/license"
	"github.com/jdverbeke/cinevault-server-go/internal/features/playback"
	"github.com/jdverbeke/cinevault-server-go/internal/features/user"
	"github.com/jdverbeke/cinevault-server-go/internal/features/watchprogress"
	"github.com/jdverbeke/cinevault-server-go/internal/middleware"
	"github.com/jdverbeke/cinevault-server-go/pkg/cache"
	"github.com/jdverbeke/cinevault-server-go/pkg/config"
	"github.com/jdverbeke/cinevault-server-go/pkg/health"
	"github.com/jdverbeke/cinevault-server-go/pkg/tmdb"
)

// Register wires all feature routes onto the engine.
func Register(engine *gin.Engine, cfg *config.Config, db *gorm.DB, redisClient *cache.RedisClient, tmdbClient *tmdb.Client, logger *slog.Logger) {
	// Health check endpoints (no /api prefix for Kubernetes probes)
	healthHandler := health.NewHandler(db, redisClient, logger)
	engine.GET("/health", healthHandler.Health)
	engine.GET("/ready", healthHandler.Ready)
	engine.GET("/version", healthHandler.VersionInfo)

	// Metrics endpoint for Prometheus
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Database stats endpoint (protected in production)
	if !cfg.IsProduction() {
		engine.GET("/debug/db-stats", healthHandler.DBStats)
	}

	api := engine.Group("/api")

	// Initialize global middleware instance
	middleware.Initialize(db, cfg.JWTSecret, logger)

	tokenCfg := auth.TokenConfig{
		JWTSecret:          cfg.JWTSecret,
		JWTRefreshSecret:   cfg.JWTRefreshSecret,
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
	}

	authHandler := auth.NewHandler(db, tokenCfg, cfg.Google, logger)
	auth.RegisterRoutes(api, authHandler)

	userHandler := user.NewHandler(db, logger)
	user.RegisterRoutes(api, userHandler)

	licenseHandler := license.NewHandler(db, logger)
	license.RegisterRoutes(api, licenseHandler)

	favoriteHandler := favorite.NewHandler(db, logger)
	favorite.RegisterRoutes(api, favoriteHandler)

	progressHandler := watchprogress.NewHandler(db, logger)
	watchprogress.RegisterRoutes(api, progressHandler)

	catalogService := catalog.NewService(tmdbClient, redisClient, time.Duration(cfg.TMDB.CacheTTLSec)*time.Second, logger)
	catalogHandler := catalog.NewHandler(catalogService, logger)
	catalog.RegisterRoutes(api, catalogHandler)

	playbackHandler := playback.NewHandler(cfg.Playback.EmbedBaseURL, logger)
	playback.RegisterRoutes(api, playbackHandler)

	dashboardHandler := dashboard.NewHandler(db, logger)
	dashboard.RegisterRoutes(api, dashboardHandler)
}
