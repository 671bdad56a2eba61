// Package providers contains the external feed collaborators: the weather
// alert feed, the air quality backends and the observation source. Scoring
// consumes these through small interfaces and never learns which backend is
// configured.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/daymark-hq/daymark-go/internal/config"
	"github.com/daymark-hq/daymark-go/internal/models"
)

// AlertProvider returns the number of active weather alerts for a coordinate.
type AlertProvider interface {
	ActiveAlertCount(ctx context.Context, lat, lon float64) (int, error)
}

// AirQualityProvider returns the AQI for a coordinate. A nil value with a nil
// error means the provider has no coverage there; that is a valid outcome,
// not a failure.
type AirQualityProvider interface {
	FetchAQI(ctx context.Context, lat, lon float64) (*float64, error)
}

// ObservationProvider supplies the raw environmental measurements for a
// county scoring run.
type ObservationProvider interface {
	Observe(ctx context.Context, county models.County) (models.RawObservation, error)
}

// NewAirQualityProvider builds the backend named by configuration.
func NewAirQualityProvider(cfg config.ProvidersConfig, logger *logrus.Logger) (AirQualityProvider, error) {
	switch cfg.AirQualityBackend {
	case config.BackendOpenAQ:
		return NewOpenAQClient(cfg, logger), nil
	case config.BackendAirNow:
		return NewAirNowClient(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown air quality backend: %q", cfg.AirQualityBackend)
	}
}

func newHTTPClient(timeoutSeconds int) *http.Client {
	timeout := time.Duration(timeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// getJSON performs a GET against url and decodes the JSON body into result.
func getJSON(ctx context.Context, client *http.Client, url string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "daymark-go/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
