package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/daymark-hq/daymark-go/internal/database"
)

type HealthHandler struct {
	db    *database.PostgresDB
	redis *database.RedisClient
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

func NewHealthHandler(db *database.PostgresDB, redis *database.RedisClient) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	services := make(map[string]string)
	overall := "ok"

	if h.db != nil {
		if err := h.db.HealthCheck(c.Request.Context()); err != nil {
			services["database"] = "error"
			overall = "degraded"
		} else {
			services["database"] = "ok"
		}
	} else {
		services["database"] = "not configured"
		overall = "degraded"
	}

	if h.redis != nil {
		if err := h.redis.HealthCheck(c.Request.Context()); err != nil {
			services["redis"] = "error"
			overall = "degraded"
		} else {
			services["redis"] = "ok"
		}
	} else {
		services["redis"] = "not configured"
	}

	statusCode := http.StatusOK
	if overall == "degraded" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, HealthResponse{
		Status:    overall,
		Timestamp: time.Now(),
		Services:  services,
	})
}
