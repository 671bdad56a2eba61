package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/daymark-hq/daymark-go/internal/models"
	"github.com/daymark-hq/daymark-go/internal/observability"
)

// SnapshotStore persists one snapshot row per county per run. Implemented by
// database.SnapshotRepository.
type SnapshotStore interface {
	Insert(ctx context.Context, snap models.Snapshot) error
}

// CollectorService runs periodic collection passes over the configured
// counties, computing a composite report for each and persisting a snapshot.
// Counties are independent, so a pass scores them concurrently with a bounded
// worker count, and one county failing never aborts the run.
type CollectorService struct {
	reports      *ReportService
	store        SnapshotStore
	counties     []models.County
	region       string
	interval     time.Duration
	workers      int
	modelVersion string
	clock        clockwork.Clock
	metrics      *observability.Metrics
	logger       *logrus.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type CollectorOptions struct {
	Counties     []models.County
	Region       string
	Interval     time.Duration
	Workers      int
	ModelVersion string
	Clock        clockwork.Clock
}

func NewCollectorService(
	reports *ReportService,
	store SnapshotStore,
	opts CollectorOptions,
	metrics *observability.Metrics,
	logger *logrus.Logger,
) *CollectorService {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	return &CollectorService{
		reports:      reports,
		store:        store,
		counties:     opts.Counties,
		region:       opts.Region,
		interval:     opts.Interval,
		workers:      opts.Workers,
		modelVersion: opts.ModelVersion,
		clock:        opts.Clock,
		metrics:      metrics,
		logger:       logger,
	}
}

// Start launches the collection loop. The first pass runs immediately, then
// one per interval until Stop is called.
func (c *CollectorService) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	c.metrics.CollectorRunning.Set(1)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer c.metrics.CollectorRunning.Set(0)

		c.RunOnce(ctx)

		ticker := c.clock.NewTicker(c.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.Chan():
				c.RunOnce(ctx)
			}
		}
	}()

	c.logger.WithFields(logrus.Fields{
		"region":   c.region,
		"counties": len(c.counties),
		"interval": c.interval,
	}).Info("Collector started")
}

// Stop halts the collection loop and waits for an in-flight pass to finish.
func (c *CollectorService) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()
	c.logger.Info("Collector stopped")
}

// RunOnce executes a single collection pass over every configured county.
func (c *CollectorService) RunOnce(ctx context.Context) {
	runID := uuid.New()
	snapshotAt := c.clock.Now().UTC()

	log := c.logger.WithField("run_id", runID)
	log.Info("Starting collection run")

	sem := make(chan struct{}, c.workers)
	var wg sync.WaitGroup
	for _, county := range c.counties {
		wg.Add(1)
		sem <- struct{}{}
		go func(county models.County) {
			defer wg.Done()
			defer func() { <-sem }()
			c.collectCounty(ctx, runID, snapshotAt, county)
		}(county)
	}
	wg.Wait()

	c.metrics.CollectionRunSize.Observe(float64(len(c.counties)))
	log.Info("Collection run finished")
}

func (c *CollectorService) collectCounty(ctx context.Context, runID uuid.UUID, snapshotAt time.Time, county models.County) {
	log := c.logger.WithFields(logrus.Fields{
		"run_id": runID,
		"county": county.Name,
	})

	report, err := c.reports.ComputeCountyReport(ctx, county)
	if err != nil {
		c.metrics.SnapshotErrors.Inc()
		log.WithError(err).Error("County report failed, skipping snapshot")
		return
	}

	snap := models.Snapshot{
		RunID:        runID,
		SnapshotAt:   snapshotAt,
		Region:       c.region,
		County:       county.Name,
		Scores:       report.Scores,
		StateLabel:   report.State,
		ModelVersion: c.modelVersion,
	}
	if err := c.store.Insert(ctx, snap); err != nil {
		c.metrics.SnapshotErrors.Inc()
		log.WithError(err).Error("Snapshot write failed")
		return
	}

	c.metrics.SnapshotsWritten.Inc()
	log.WithField("state", report.State).Debug("Snapshot written")
}
