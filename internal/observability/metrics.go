package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the risk service.
type Metrics struct {
	SnapshotsWritten prometheus.Counter
	SnapshotErrors   prometheus.Counter
	CollectorRunning prometheus.Gauge

	// Per-feed metrics.
	ProviderRequests *prometheus.CounterVec // labels: provider={alerts,air_quality}, outcome={success,error,empty}

	ReportDuration    prometheus.Histogram
	CollectionRunSize prometheus.Histogram
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.SnapshotsWritten,
		m.SnapshotErrors,
		m.CollectorRunning,
		m.ProviderRequests,
		m.ReportDuration,
		m.CollectionRunSize,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		SnapshotsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "daymark",
			Name:      "snapshots_written_total",
			Help:      "Total risk snapshots persisted.",
		}),
		SnapshotErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "daymark",
			Name:      "snapshot_errors_total",
			Help:      "Total failed snapshot writes.",
		}),
		CollectorRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "daymark",
			Name:      "collector_running",
			Help:      "1 when the collection loop is active, 0 when shut down.",
		}),
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "daymark",
			Name:      "provider_requests_total",
			Help:      "External feed requests by provider and outcome.",
		}, []string{"provider", "outcome"}),
		ReportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "daymark",
			Name:      "report_duration_seconds",
			Help:      "Duration of one county composite report computation.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		CollectionRunSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "daymark",
			Name:      "collection_run_counties",
			Help:      "Number of counties scored per collection run.",
			Buckets:   []float64{1, 5, 10, 20, 40, 67},
		}),
	}
}
