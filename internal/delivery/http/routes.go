package http

import (
	"net/http"

	"github.com/dealscout/backend/config"
	"github.com/dealscout/backend/internal/monitoring"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RouterDeps carries the optional collaborators of the router.
// Nil fields disable the matching middleware or endpoint.
type RouterDeps struct {
	Logger         *zap.Logger
	Metrics        *monitoring.Metrics
	MetricsHandler http.Handler // serves /metrics, defaults to promhttp.Handler()
}

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, deps RouterDeps) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	if deps.Metrics != nil {
		router.Use(MetricsMiddleware(deps.Metrics))
	}
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	if deps.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	} else if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	{
		v1.POST("/extract", handler.ExtractProduct)
		v1.POST("/validate", handler.ValidateURL)

		stores := v1.Group("/stores")
		{
			stores.GET("/modal", handler.StoreModal)
			stores.GET("/:store/modal-config", handler.StoreModalConfig)
		}

		v1.GET("/urls/format", handler.URLFormat)
	}

	return router
}
