package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/daymark-hq/daymark-go/internal/api/handlers"
	"github.com/daymark-hq/daymark-go/internal/database"
	"github.com/daymark-hq/daymark-go/internal/models"
	"github.com/daymark-hq/daymark-go/internal/services"
)

func SetupRoutes(
	router *gin.Engine,
	db *database.PostgresDB,
	redis *database.RedisClient,
	reports *services.ReportService,
	status *services.StatusService,
	counties []models.County,
) {
	healthHandler := handlers.NewHealthHandler(db, redis)
	reportHandler := handlers.NewReportHandler(reports, counties)
	statusHandler := handlers.NewStatusHandler(status)

	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		insurer := v1.Group("/insurer")
		{
			insurer.GET("/county/:county", reportHandler.GetCountyReport)
		}

		v1.GET("/status", statusHandler.GetDailyStatus)
	}
}
