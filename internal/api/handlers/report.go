package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/daymark-hq/daymark-go/internal/models"
	"github.com/daymark-hq/daymark-go/internal/services"
)

// ReportHandler serves the insurer-facing county composite report.
type ReportHandler struct {
	reports  *services.ReportService
	counties map[string]models.County
}

func NewReportHandler(reports *services.ReportService, counties []models.County) *ReportHandler {
	index := make(map[string]models.County, len(counties))
	for _, county := range counties {
		index[strings.ToLower(county.Name)] = county
	}
	return &ReportHandler{reports: reports, counties: index}
}

// GetCountyReport handles GET /api/v1/insurer/county/:county.
func (h *ReportHandler) GetCountyReport(c *gin.Context) {
	name := c.Param("county")

	county, ok := h.counties[strings.ToLower(name)]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown county: " + name})
		return
	}

	report, err := h.reports.ComputeCountyReport(c.Request.Context(), county)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to compute county report"})
		return
	}

	c.JSON(http.StatusOK, report)
}
