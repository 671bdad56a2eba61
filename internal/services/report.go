package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/daymark-hq/daymark-go/internal/config"
	"github.com/daymark-hq/daymark-go/internal/database"
	"github.com/daymark-hq/daymark-go/internal/models"
	"github.com/daymark-hq/daymark-go/internal/observability"
	"github.com/daymark-hq/daymark-go/internal/providers"
	"github.com/daymark-hq/daymark-go/internal/scoring"
)

// HistoryStore supplies the trailing CAI series for a county, most-recent-last.
// Implemented by database.SnapshotRepository.
type HistoryStore interface {
	CAIHistory(ctx context.Context, region, county string, window int) ([]float64, error)
}

// ReportService computes the full composite risk report for one county:
// normalizers, composites, trend signals and the risk-state label.
type ReportService struct {
	observations providers.ObservationProvider
	history      HistoryStore
	cfg          config.ScoringConfig
	region       string
	metrics      *observability.Metrics
	logger       *logrus.Logger
}

func NewReportService(
	observations providers.ObservationProvider,
	history HistoryStore,
	cfg config.ScoringConfig,
	region string,
	metrics *observability.Metrics,
	logger *logrus.Logger,
) *ReportService {
	return &ReportService{
		observations: observations,
		history:      history,
		cfg:          cfg,
		region:       region,
		metrics:      metrics,
		logger:       logger,
	}
}

// ComputeCountyReport runs the full scoring pipeline for one county. Short or
// missing history degrades the trend signals to their lowest bands and marks
// the report incomplete instead of failing or computing from a short window.
func (s *ReportService) ComputeCountyReport(ctx context.Context, county models.County) (models.CountyReport, error) {
	start := time.Now()
	defer func() {
		s.metrics.ReportDuration.Observe(time.Since(start).Seconds())
	}()

	obs, err := s.observations.Observe(ctx, county)
	if err != nil {
		return models.CountyReport{}, fmt.Errorf("failed to observe county %s: %w", county.Name, err)
	}

	heat := scoring.HeatScore(obs.Month, obs.HeatIndexF)
	rain := scoring.RainScore(obs.Rain24hIn, obs.Tropical)
	wind := scoring.WindScore(obs.WindSustMPH, obs.Tropical)

	wps := scoring.WPS(heat, rain, wind)
	iss := scoring.ISS(heat, obs.PopDensity, s.cfg.PersistenceDefault)
	cai := scoring.CAI(wps, iss, s.cfg.DASDefault)

	// Today's WPS and wind score stand in for the 3-day forecast average and
	// max until a forecast feed is wired up.
	forecastWPS := wps
	windMax3d := wind

	history := s.caiHistory(ctx, county.Name)
	series := append(history, cai)
	trendComplete := true

	var sts float64
	delta, err := scoring.Delta3d(series)
	if err != nil {
		if !errors.Is(err, scoring.ErrInsufficientHistory) {
			return models.CountyReport{}, err
		}
		sts = scoring.NeutralSTS
		trendComplete = false
	} else {
		sts = scoring.STSFromDeltaCAI(delta)
	}

	// Second pass: the wind escalation adjustment operates on the computed
	// STS, so it must run after the base delta mapping.
	sts = scoring.ApplyWindEscalation(sts, wind, s.cfg.Wind48hAgoDefault, forecastWPS, obs.Tropical)

	var vex float64
	caiRange, err := scoring.Range5d(series)
	if err != nil {
		if !errors.Is(err, scoring.ErrInsufficientHistory) {
			return models.CountyReport{}, err
		}
		vex = scoring.NeutralVEX
		trendComplete = false
	} else {
		vex = scoring.VEXFromRange(caiRange)
	}

	fpc := scoring.FPCFromForecast(forecastWPS, windMax3d, obs.Tropical)
	av := scoring.AV(sts, vex, fpc)
	state := scoring.LabelState(cai, av)

	return models.CountyReport{
		Region:     s.region,
		County:     county.Name,
		ComputedAt: time.Now().UTC(),
		Scores: map[string]float64{
			models.ScoreWPS: wps,
			models.ScoreISS: iss,
			models.ScoreDAS: s.cfg.DASDefault,
			models.ScoreCAI: cai,
			models.ScoreSTS: sts,
			models.ScoreVEX: vex,
			models.ScoreFPC: fpc,
			models.ScoreAV:  av,
		},
		State:         state,
		TrendComplete: trendComplete,
	}, nil
}

// caiHistory fetches the stored trailing series, degrading to an empty series
// when the store has too little history or is unreachable. The trend math
// downstream turns an empty series into neutral signals.
func (s *ReportService) caiHistory(ctx context.Context, county string) []float64 {
	history, err := s.history.CAIHistory(ctx, s.region, county, s.cfg.HistoryWindow-1)
	if err != nil {
		if errors.Is(err, database.ErrInsufficientHistory) {
			s.logger.WithField("county", county).Info("Insufficient CAI history, trend signals degrade to neutral")
		} else {
			s.logger.WithError(err).WithField("county", county).Warn("CAI history unavailable, trend signals degrade to neutral")
		}
		return nil
	}
	return history
}
