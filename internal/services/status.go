package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/daymark-hq/daymark-go/internal/models"
	"github.com/daymark-hq/daymark-go/internal/observability"
	"github.com/daymark-hq/daymark-go/internal/providers"
	"github.com/daymark-hq/daymark-go/internal/scoring"
)

// StatusService runs the daily-status pipeline for a coordinate: it calls the
// alert and air-quality feeds with a bounded per-feed timeout and aggregates
// whatever came back. A feed failure degrades that signal to unavailable; it
// never fails the response.
type StatusService struct {
	alerts      providers.AlertProvider
	airQuality  providers.AirQualityProvider
	weights     scoring.AQIWeights
	feedTimeout time.Duration
	metrics     *observability.Metrics
	logger      *logrus.Logger
}

func NewStatusService(
	alerts providers.AlertProvider,
	airQuality providers.AirQualityProvider,
	weights scoring.AQIWeights,
	feedTimeout time.Duration,
	metrics *observability.Metrics,
	logger *logrus.Logger,
) *StatusService {
	return &StatusService{
		alerts:      alerts,
		airQuality:  airQuality,
		weights:     weights,
		feedTimeout: feedTimeout,
		metrics:     metrics,
		logger:      logger,
	}
}

// DailyStatus computes the composite daily status for a coordinate.
func (s *StatusService) DailyStatus(ctx context.Context, lat, lon float64) models.DailyStatus {
	alertCount := s.fetchAlerts(ctx, lat, lon)
	aqi := s.fetchAQI(ctx, lat, lon)
	return scoring.DailyStatus(alertCount, aqi, s.weights)
}

func (s *StatusService) fetchAlerts(ctx context.Context, lat, lon float64) *int {
	feedCtx, cancel := context.WithTimeout(ctx, s.feedTimeout)
	defer cancel()

	count, err := s.alerts.ActiveAlertCount(feedCtx, lat, lon)
	if err != nil {
		s.metrics.ProviderRequests.WithLabelValues("alerts", "error").Inc()
		s.logger.WithError(err).WithFields(logrus.Fields{
			"lat": lat,
			"lon": lon,
		}).Warn("Alert feed failed, degrading to unavailable")
		return nil
	}
	s.metrics.ProviderRequests.WithLabelValues("alerts", "success").Inc()
	return &count
}

func (s *StatusService) fetchAQI(ctx context.Context, lat, lon float64) *float64 {
	feedCtx, cancel := context.WithTimeout(ctx, s.feedTimeout)
	defer cancel()

	aqi, err := s.airQuality.FetchAQI(feedCtx, lat, lon)
	if err != nil {
		s.metrics.ProviderRequests.WithLabelValues("air_quality", "error").Inc()
		s.logger.WithError(err).WithFields(logrus.Fields{
			"lat": lat,
			"lon": lon,
		}).Warn("Air quality feed failed, degrading to unavailable")
		return nil
	}
	if aqi == nil {
		s.metrics.ProviderRequests.WithLabelValues("air_quality", "empty").Inc()
		return nil
	}
	s.metrics.ProviderRequests.WithLabelValues("air_quality", "success").Inc()
	return aqi
}
