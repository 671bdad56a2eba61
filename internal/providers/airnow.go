package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/daymark-hq/daymark-go/internal/config"
)

// AirNowClient reads the current PM2.5 AQI from the AirNow API. AirNow
// reports AQI directly, so no conversion happens here.
type AirNowClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *logrus.Logger
}

func NewAirNowClient(cfg config.ProvidersConfig, logger *logrus.Logger) *AirNowClient {
	return &AirNowClient{
		httpClient: newHTTPClient(cfg.TimeoutSeconds),
		baseURL:    strings.TrimSuffix(cfg.AirNowURL, "/"),
		apiKey:     cfg.AirNowAPIKey,
		logger:     logger,
	}
}

type airNowObservation struct {
	ParameterName string  `json:"ParameterName"`
	AQI           float64 `json:"AQI"`
}

// FetchAQI returns the current PM2.5 AQI, or nil when AirNow has no
// reporting area for the coordinate.
func (c *AirNowClient) FetchAQI(ctx context.Context, lat, lon float64) (*float64, error) {
	params := url.Values{}
	params.Set("format", "application/json")
	params.Set("latitude", fmt.Sprintf("%.4f", lat))
	params.Set("longitude", fmt.Sprintf("%.4f", lon))
	params.Set("API_KEY", c.apiKey)

	requestURL := c.baseURL + "/aq/observation/latLong/current/?" + params.Encode()

	var observations []airNowObservation
	if err := getJSON(ctx, c.httpClient, requestURL, &observations); err != nil {
		return nil, fmt.Errorf("failed to fetch AirNow observations: %w", err)
	}

	for _, obs := range observations {
		if obs.ParameterName != "PM2.5" {
			continue
		}
		aqi := obs.AQI
		c.logger.WithFields(logrus.Fields{
			"lat": lat,
			"lon": lon,
			"aqi": aqi,
		}).Debug("Fetched AirNow observation")
		return &aqi, nil
	}

	return nil, nil
}
