// Package api assembles the gin router for the projection HTTP API.
package api

import (
	"log/slog"
	"net/http"

	"portfolio-projection/internal/api/handlers"
	"portfolio-projection/internal/api/middleware"
	"portfolio-projection/internal/logging"
	"portfolio-projection/internal/metrics"
	"portfolio-projection/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Options struct {
	Service        *service.Service
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer // nil disables /metrics
	Logger         *slog.Logger
	AllowedOrigins []string
	JWTSecret      []byte
}

func NewRouter(opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	router := gin.New()

	// Apply middleware
	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.ErrorHandler(logger))

	simulationHandler := handlers.NewSimulationHandler(opts.Service, opts.Metrics, logger)
	profileHandler := handlers.NewProfileHandler(opts.Service)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	// API routes
	api := router.Group("/api/v1")
	api.Use(middleware.Auth(opts.JWTSecret))
	{
		api.POST("/simulations", simulationHandler.RunSimulation)
		api.POST("/simulations/expected", simulationHandler.ExpectedValues)
		api.POST("/simulations/export", simulationHandler.ExportSimulation)
		api.POST("/simulations/compare", simulationHandler.CompareProfiles)
		api.GET("/simulations/playback", simulationHandler.Playback)

		api.GET("/profiles", profileHandler.ListProfiles)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
	})

	return router
}
