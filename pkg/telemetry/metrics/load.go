package metrics

import (
	"time"

	"chronicle-hq/chronicle/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// LoadMetrics tracks whole load runs.
//
// Metrics:
//   - chronicle_loader_runs_total: Load runs by status
//   - chronicle_loader_run_duration_seconds: Load run duration
//   - chronicle_loader_files_last_run: Documents attempted in the last run
//   - chronicle_loader_failed_files_last_run: Documents discarded in the last run
//   - chronicle_loader_diagnostics_total: Diagnostics by error type
//   - chronicle_loader_entities: Loaded entities by kind
//   - chronicle_loader_reloads_total: Reloads by trigger
type LoadMetrics struct {
	runsTotal        *prometheus.CounterVec
	runDuration      prometheus.Histogram
	files            prometheus.Gauge
	failedFiles      prometheus.Gauge
	diagnosticsTotal *prometheus.CounterVec
	entities         *prometheus.GaugeVec
	reloadsTotal     *prometheus.CounterVec
}

// NewLoadMetrics creates and registers load metrics with the provided registry.
func NewLoadMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *LoadMetrics {
	lm := &LoadMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "runs_total",
				Help:      "Total number of load runs",
			},
			[]string{"status"},
		),

		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "run_duration_seconds",
				Help:      "Duration of load runs in seconds",
				// A full game tree takes a few seconds
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
			},
		),

		files: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "files_last_run",
				Help:      "Documents attempted by the last load run",
			},
		),

		failedFiles: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "failed_files_last_run",
				Help:      "Documents discarded by the last load run",
			},
		),

		diagnosticsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "diagnostics_total",
				Help:      "Total number of load diagnostics",
			},
			[]string{"type"},
		),

		entities: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "entities",
				Help:      "Entities in the current world",
			},
			[]string{"kind"},
		),

		reloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "reloads_total",
				Help:      "Total number of reloads",
			},
			[]string{"trigger"},
		),
	}

	registry.MustRegister(
		lm.runsTotal,
		lm.runDuration,
		lm.files,
		lm.failedFiles,
		lm.diagnosticsTotal,
		lm.entities,
		lm.reloadsTotal,
	)

	return lm
}

// RecordLoad records a completed load run.
func (lm *LoadMetrics) RecordLoad(status string, duration time.Duration, files, failed int) {
	lm.runsTotal.WithLabelValues(status).Inc()
	lm.runDuration.Observe(duration.Seconds())
	lm.files.Set(float64(files))
	lm.failedFiles.Set(float64(failed))
}

// RecordDiagnostic counts one diagnostic.
func (lm *LoadMetrics) RecordDiagnostic(errorType string) {
	lm.diagnosticsTotal.WithLabelValues(errorType).Inc()
}

// SetEntities sets the entity count for kind.
func (lm *LoadMetrics) SetEntities(kind string, count int) {
	lm.entities.WithLabelValues(kind).Set(float64(count))
}

// RecordReload counts one reload.
func (lm *LoadMetrics) RecordReload(trigger string) {
	lm.reloadsTotal.WithLabelValues(trigger).Inc()
}
