package providers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/daymark-hq/daymark-go/internal/config"
	"github.com/daymark-hq/daymark-go/internal/scoring"
)

// OpenAQClient reads the latest PM2.5 concentration near a coordinate from
// OpenAQ and converts it to an AQI. OpenAQ reports raw concentrations, so the
// EPA conversion happens here, at the boundary.
type OpenAQClient struct {
	httpClient *http.Client
	baseURL    string
	logger     *logrus.Logger
}

func NewOpenAQClient(cfg config.ProvidersConfig, logger *logrus.Logger) *OpenAQClient {
	return &OpenAQClient{
		httpClient: newHTTPClient(cfg.TimeoutSeconds),
		baseURL:    strings.TrimSuffix(cfg.OpenAQURL, "/"),
		logger:     logger,
	}
}

type openAQLatestResponse struct {
	Results []struct {
		Measurements []struct {
			Parameter string  `json:"parameter"`
			Value     float64 `json:"value"`
		} `json:"measurements"`
	} `json:"results"`
}

// FetchAQI returns the AQI derived from the nearest PM2.5 reading, or nil
// when OpenAQ has no coverage for the coordinate.
func (c *OpenAQClient) FetchAQI(ctx context.Context, lat, lon float64) (*float64, error) {
	url := fmt.Sprintf("%s/v2/latest?coordinates=%.4f,%.4f&radius=25000&parameter=pm25&limit=1",
		c.baseURL, lat, lon)

	var response openAQLatestResponse
	if err := getJSON(ctx, c.httpClient, url, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch OpenAQ latest: %w", err)
	}

	for _, result := range response.Results {
		for _, m := range result.Measurements {
			if m.Parameter != "pm25" {
				continue
			}
			aqi := scoring.PM25ToAQI(m.Value)
			c.logger.WithFields(logrus.Fields{
				"lat":  lat,
				"lon":  lon,
				"pm25": m.Value,
				"aqi":  aqi,
			}).Debug("Fetched OpenAQ reading")
			return &aqi, nil
		}
	}

	// No station in range: a valid no-coverage outcome.
	return nil, nil
}
