package providers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/daymark-hq/daymark-go/internal/config"
)

// NWSClient counts active alerts from the National Weather Service API.
type NWSClient struct {
	httpClient *http.Client
	baseURL    string
	logger     *logrus.Logger
}

func NewNWSClient(cfg config.ProvidersConfig, logger *logrus.Logger) *NWSClient {
	return &NWSClient{
		httpClient: newHTTPClient(cfg.TimeoutSeconds),
		baseURL:    cfg.AlertsURL,
		logger:     logger,
	}
}

type nwsAlertsResponse struct {
	Features []struct {
		ID string `json:"id"`
	} `json:"features"`
}

// ActiveAlertCount returns the number of active alerts covering the point.
func (c *NWSClient) ActiveAlertCount(ctx context.Context, lat, lon float64) (int, error) {
	url := fmt.Sprintf("%s/alerts/active?point=%.4f,%.4f", c.baseURL, lat, lon)

	var response nwsAlertsResponse
	if err := getJSON(ctx, c.httpClient, url, &response); err != nil {
		return 0, fmt.Errorf("failed to fetch active alerts: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"lat":    lat,
		"lon":    lon,
		"alerts": len(response.Features),
	}).Debug("Fetched active alerts")

	return len(response.Features), nil
}
