package services

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daymark-hq/daymark-go/internal/config"
	"github.com/daymark-hq/daymark-go/internal/database"
	"github.com/daymark-hq/daymark-go/internal/models"
	"github.com/daymark-hq/daymark-go/internal/observability"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func testScoringConfig() config.ScoringConfig {
	return config.ScoringConfig{
		PersistenceDefault: 40,
		DASDefault:         10,
		Wind48hAgoDefault:  30,
		HistoryWindow:      5,
		ModelVersion:       "fl-v1",
	}
}

// fixedObservations returns the same observation for every county.
type fixedObservations struct {
	obs models.RawObservation
	err error
}

func (f *fixedObservations) Observe(_ context.Context, county models.County) (models.RawObservation, error) {
	if f.err != nil {
		return models.RawObservation{}, f.err
	}
	obs := f.obs
	obs.PopDensity = county.PopDensity
	return obs, nil
}

type fixedHistory struct {
	history []float64
	err     error
}

func (f *fixedHistory) CAIHistory(_ context.Context, _, _ string, _ int) ([]float64, error) {
	return f.history, f.err
}

func placeholderObservation() models.RawObservation {
	return models.RawObservation{
		Month:       2,
		HeatIndexF:  92,
		Rain24hIn:   0.2,
		WindSustMPH: 18,
		Tropical:    false,
	}
}

func newTestReportService(obs *fixedObservations, history *fixedHistory) *ReportService {
	return NewReportService(
		obs,
		history,
		testScoringConfig(),
		"FL",
		observability.NewMetricsForTesting(),
		testLogger(),
	)
}

func TestComputeCountyReport_PlaceholderInputs(t *testing.T) {
	svc := newTestReportService(
		&fixedObservations{obs: placeholderObservation()},
		&fixedHistory{history: []float64{45, 47, 50, 54}},
	)

	report, err := svc.ComputeCountyReport(context.Background(), models.County{Name: "Duval", PopDensity: 1200})
	require.NoError(t, err)

	// Documented end-to-end expectation for the placeholder inputs.
	assert.InDelta(t, 9.0, report.Scores[models.ScoreWPS], 0.0001)
	assert.InDelta(t, 20.4, report.Scores[models.ScoreISS], 0.0001)
	assert.InDelta(t, 10.0, report.Scores[models.ScoreDAS], 0.0001)
	assert.InDelta(t, 14.28, report.Scores[models.ScoreCAI], 0.0001)
	assert.Equal(t, models.StateStable, report.State)
	assert.True(t, report.TrendComplete)
	assert.Equal(t, "FL", report.Region)
	assert.Equal(t, "Duval", report.County)
}

func TestComputeCountyReport_TrendFromHistory(t *testing.T) {
	// Stored history 45,47,50,54; today's CAI is 14.28, so
	// delta3d = 14.28 - 47 (negative, lowest band) and range spans the series.
	svc := newTestReportService(
		&fixedObservations{obs: placeholderObservation()},
		&fixedHistory{history: []float64{45, 47, 50, 54}},
	)

	report, err := svc.ComputeCountyReport(context.Background(), models.County{Name: "Duval", PopDensity: 1200})
	require.NoError(t, err)

	assert.Equal(t, 10.0, report.Scores[models.ScoreSTS])
	// range = 54 - 14.28 = 39.72, top VEX band.
	assert.Equal(t, 95.0, report.Scores[models.ScoreVEX])
	// Quiet forecast proxies: FPC bottom band.
	assert.Equal(t, 15.0, report.Scores[models.ScoreFPC])
}

func TestComputeCountyReport_InsufficientHistoryDegrades(t *testing.T) {
	svc := newTestReportService(
		&fixedObservations{obs: placeholderObservation()},
		&fixedHistory{err: database.ErrInsufficientHistory},
	)

	report, err := svc.ComputeCountyReport(context.Background(), models.County{Name: "Glades", PopDensity: 100})
	require.NoError(t, err)

	assert.False(t, report.TrendComplete)
	assert.Equal(t, 10.0, report.Scores[models.ScoreSTS], "STS degrades to the lowest band")
	assert.Equal(t, 10.0, report.Scores[models.ScoreVEX], "VEX degrades to the lowest band")
	assert.Equal(t, models.StateStable, report.State)
}

func TestComputeCountyReport_HistoryStoreFailureDegrades(t *testing.T) {
	svc := newTestReportService(
		&fixedObservations{obs: placeholderObservation()},
		&fixedHistory{err: errors.New("connection refused")},
	)

	report, err := svc.ComputeCountyReport(context.Background(), models.County{Name: "Duval", PopDensity: 1200})
	require.NoError(t, err, "a history store outage degrades the trend, it does not fail the report")
	assert.False(t, report.TrendComplete)
}

func TestComputeCountyReport_WindEscalationBoost(t *testing.T) {
	// Tropical system with strong wind: wind score 75 (floored), 48h-ago
	// default 30, delta 45 >= 25, and tropical satisfies the third condition.
	obs := placeholderObservation()
	obs.Tropical = true
	obs.WindSustMPH = 60

	svc := newTestReportService(
		&fixedObservations{obs: obs},
		&fixedHistory{history: []float64{45, 45, 45, 45}},
	)

	report, err := svc.ComputeCountyReport(context.Background(), models.County{Name: "Monroe", PopDensity: 100})
	require.NoError(t, err)

	// Base STS is 10 (CAI fell against the stored history); the escalation
	// adjustment adds 10 on top.
	assert.Equal(t, 20.0, report.Scores[models.ScoreSTS])
	// Tropical flag pins FPC at its ceiling.
	assert.Equal(t, 95.0, report.Scores[models.ScoreFPC])
}

func TestComputeCountyReport_ObservationFailure(t *testing.T) {
	svc := newTestReportService(
		&fixedObservations{err: errors.New("feed down")},
		&fixedHistory{history: []float64{45, 47, 50, 54}},
	)

	_, err := svc.ComputeCountyReport(context.Background(), models.County{Name: "Duval"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to observe county")
}
