// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"langodata/internal/domain/auth"
	"langodata/internal/domain/extract"
	"langodata/internal/domain/license"
	"langodata/internal/domain/rates"
	"langodata/internal/domain/submissions"
	"langodata/internal/infrastructure/http/v1/handlers"
	"langodata/internal/infrastructure/http/v1/middleware"
	"langodata/internal/infrastructure/storage/postgres"
	"langodata/pkg/logger"
)

// RouterConfig holds the wired services the router exposes.
type RouterConfig struct {
	// Sources holds the per-source connection pools (for health checks)
	Sources *postgres.SourceSet

	// License reports gateway license state on the info endpoint
	License *license.Manager

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// AuthService for authentication endpoints
	AuthService *auth.Service

	// ExtractService serves parameterized data retrieval
	ExtractService *extract.Service

	// RatesService serves currency-rate listings
	RatesService *rates.Service

	// SubmissionsService serves submission monitoring
	SubmissionsService *submissions.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Sources, cfg.License)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	baseHandler := handlers.NewBaseHandler()

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Public auth endpoints
		authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)
		authHandler.RegisterRoutes(v1.Group("/auth"))

		// Protected endpoints
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		extractHandler := handlers.NewExtractHandler(baseHandler, cfg.ExtractService)
		extractHandler.RegisterRoutes(protected.Group("/data"))

		ratesHandler := handlers.NewRatesHandler(baseHandler, cfg.RatesService)
		ratesHandler.RegisterRoutes(protected.Group("/rates"))

		submissionsHandler := handlers.NewSubmissionsHandler(baseHandler, cfg.SubmissionsService)
		submissionsHandler.RegisterRoutes(protected.Group("/submissions"))
	}

	return router
}
