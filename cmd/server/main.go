package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/daymark-hq/daymark-go/internal/api"
	"github.com/daymark-hq/daymark-go/internal/config"
	"github.com/daymark-hq/daymark-go/internal/database"
	"github.com/daymark-hq/daymark-go/internal/logging"
	"github.com/daymark-hq/daymark-go/internal/observability"
	"github.com/daymark-hq/daymark-go/internal/providers"
	"github.com/daymark-hq/daymark-go/internal/services"
)

func main() {
	// Load .env file if present (local development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.Environment)
	logger.WithFields(logrus.Fields{
		"environment": cfg.Environment,
		"region":      cfg.Collector.Region,
		"counties":    len(cfg.Collector.Counties),
	}).Info("Starting daymark server")

	db, err := database.NewPostgresConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Redis is optional: without it the air quality backend is queried
	// directly on every request.
	redisClient, err := database.NewRedisConnection(cfg.Redis)
	if err != nil {
		logger.WithError(err).Warn("Redis unavailable, air quality responses will not be cached")
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	metrics := observability.NewMetrics()

	alerts := providers.NewNWSClient(cfg.Providers, logger)
	airQuality, err := providers.NewAirQualityProvider(cfg.Providers, logger)
	if err != nil {
		logger.Fatalf("Failed to build air quality provider: %v", err)
	}
	if redisClient != nil {
		ttl := time.Duration(cfg.Providers.CacheTTLSeconds) * time.Second
		airQuality = providers.NewCachedAirQuality(airQuality, redisClient, ttl, logger)
	}
	observations := providers.NewStaticObservations()

	snapshots := database.NewSnapshotRepository(db.Pool)

	reportService := services.NewReportService(
		observations,
		snapshots,
		cfg.Scoring,
		cfg.Collector.Region,
		metrics,
		logger,
	)

	feedTimeout := time.Duration(cfg.Providers.TimeoutSeconds) * time.Second
	statusService := services.NewStatusService(
		alerts,
		airQuality,
		cfg.DailyStatus.AQIWeights,
		feedTimeout,
		metrics,
		logger,
	)

	interval, err := time.ParseDuration(cfg.Collector.Interval)
	if err != nil {
		logger.Fatalf("Invalid collector interval: %v", err)
	}
	collector := services.NewCollectorService(
		reportService,
		snapshots,
		services.CollectorOptions{
			Counties:     cfg.Collector.Counties,
			Region:       cfg.Collector.Region,
			Interval:     interval,
			Workers:      cfg.Collector.Workers,
			ModelVersion: cfg.Scoring.ModelVersion,
		},
		metrics,
		logger,
	)
	collector.Start()
	defer collector.Stop()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	api.SetupRoutes(router, db, redisClient, reportService, statusService, cfg.Collector.Counties)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}
