package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/daymark-hq/daymark-go/internal/services"
)

// StatusHandler serves the composite daily status for a coordinate.
type StatusHandler struct {
	status *services.StatusService
}

func NewStatusHandler(status *services.StatusService) *StatusHandler {
	return &StatusHandler{status: status}
}

// GetDailyStatus handles GET /api/v1/status?lat=..&lon=..
func (h *StatusHandler) GetDailyStatus(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing lat"})
		return
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing lon"})
		return
	}

	status := h.status.DailyStatus(c.Request.Context(), lat, lon)
	c.JSON(http.StatusOK, status)
}
