package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-projection/internal/api"
	"portfolio-projection/internal/config"
	"portfolio-projection/internal/data"
	"portfolio-projection/internal/logging"
	"portfolio-projection/internal/metrics"
	"portfolio-projection/internal/model"
	"portfolio-projection/internal/projection"
	"portfolio-projection/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Get configuration from environment
	cfg := config.ServerFromEnv()
	logger := logging.NewLogger(cfg.LogLevel, os.Stderr)

	if info, err := os.Stat(cfg.ProfileDir); err == nil && info.IsDir() {
		logger.Info("profile directory found", "dir", cfg.ProfileDir)
	} else {
		logger.Warn("profile directory not found, serving built-in profiles", "dir", cfg.ProfileDir)
	}

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	cache := data.NewResultCache(cfg.CacheTTL, m)
	defer cache.Close()

	engine := projection.New(
		projection.WithWorkers(cfg.Workers),
		projection.WithLogger(logger),
		projection.WithRecorder(m),
	)
	svc := service.New(
		engine,
		data.NewProfileStore(cfg.ProfileDir, logger),
		cache,
		service.Limits{
			MaxScenarios:     cfg.MaxScenarios,
			MaxHorizonMonths: model.HorizonMonthsFromYears(cfg.MaxHorizonYears),
		},
		logger,
	)

	if len(cfg.JWTSecret) == 0 {
		logger.Warn("API_JWT_SECRET not set, /api/v1 is unauthenticated")
	}

	router := api.NewRouter(api.Options{
		Service:        svc,
		Metrics:        m,
		Gatherer:       reg,
		Logger:         logger,
		AllowedOrigins: cfg.AllowedOrigins,
		JWTSecret:      cfg.JWTSecret,
	})

	// Start server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting API server", "addr", srv.Addr,
			"max_scenarios", cfg.MaxScenarios, "max_horizon_years", cfg.MaxHorizonYears)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}
