package worker

import (
	"newspulse/internal/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// WorkerMetrics bundles the worker's Prometheus metrics: the shared
// configuration metrics plus crawl run tracking.
type WorkerMetrics struct {
	*config.ConfigMetrics

	// CrawlRunsTotal counts crawl runs by status (success/failure).
	CrawlRunsTotal *prometheus.CounterVec

	// CrawlDurationSeconds measures full crawl run durations.
	CrawlDurationSeconds prometheus.Histogram

	// CrawlFeedsProcessedTotal counts feeds processed across all runs.
	CrawlFeedsProcessedTotal prometheus.Counter

	// CrawlLastSuccessTimestamp is the Unix time of the last successful run.
	CrawlLastSuccessTimestamp prometheus.Gauge
}

// NewWorkerMetrics creates and registers the worker metrics.
func NewWorkerMetrics() *WorkerMetrics {
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics("worker"),

		CrawlRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_crawl_runs_total",
			Help: "Total number of crawl runs by status",
		}, []string{"status"}),

		CrawlDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_crawl_duration_seconds",
			Help:    "Duration of crawl runs in seconds",
			Buckets: []float64{1, 5, 30, 60, 300, 900, 1800},
		}),

		CrawlFeedsProcessedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_crawl_feeds_processed_total",
			Help: "Total number of feeds processed across all crawl runs",
		}),

		CrawlLastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "worker_crawl_last_success_timestamp",
			Help: "Unix timestamp of the last successful crawl run",
		}),
	}
}

// RecordRun increments the run counter. Status is "success" or "failure".
func (m *WorkerMetrics) RecordRun(status string) {
	m.CrawlRunsTotal.WithLabelValues(status).Inc()
}

// RecordRunDuration observes a crawl run duration in seconds.
func (m *WorkerMetrics) RecordRunDuration(seconds float64) {
	m.CrawlDurationSeconds.Observe(seconds)
}

// RecordFeedsProcessed adds to the processed feed counter.
func (m *WorkerMetrics) RecordFeedsProcessed(count int) {
	m.CrawlFeedsProcessedTotal.Add(float64(count))
}

// RecordLastSuccess marks the current time as the last successful run.
func (m *WorkerMetrics) RecordLastSuccess() {
	m.CrawlLastSuccessTimestamp.SetToCurrentTime()
}
