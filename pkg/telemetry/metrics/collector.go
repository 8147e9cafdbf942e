package metrics

import (
	"fmt"
	"time"

	"chronicle-hq/chronicle/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns every Prometheus metric chronicle records. A nil
// *Collector is valid and records nothing, so components can take one
// unconditionally.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// Whole-load metrics
	loadMetrics *LoadMetrics

	// Per-document metrics
	documentMetrics *DocumentMetrics
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "chronicle",
//		Subsystem: "loader",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}

	return &Collector{
		config:          cfg,
		registry:        registry,
		loadMetrics:     NewLoadMetrics(cfg, registry),
		documentMetrics: NewDocumentMetrics(cfg, registry),
	}
}

func (c *Collector) enabled() bool {
	return c != nil && c.config.Enabled
}

// RecordLoad records a completed load run.
//
// Parameters:
//   - status: "success", "partial" (some documents failed) or "error"
//   - duration: wall time of the run
//   - files: documents attempted
//   - failed: documents discarded
func (c *Collector) RecordLoad(status string, duration time.Duration, files, failed int) {
	if !c.enabled() {
		return
	}
	c.loadMetrics.RecordLoad(status, duration, files, failed)
}

// RecordDocument records one parsed document.
func (c *Collector) RecordDocument(kind, status string, duration time.Duration) {
	if !c.enabled() {
		return
	}
	c.documentMetrics.RecordDocument(kind, status, duration)
}

// RecordDiagnostic counts one diagnostic of the given error type.
func (c *Collector) RecordDiagnostic(errorType string) {
	if !c.enabled() {
		return
	}
	c.loadMetrics.RecordDiagnostic(errorType)
}

// SetEntities sets the number of loaded entities of a kind
// ("titles", "provinces", "religions", ...).
func (c *Collector) SetEntities(kind string, count int) {
	if !c.enabled() {
		return
	}
	c.loadMetrics.SetEntities(kind, count)
}

// RecordReload counts a reload by what triggered it ("watch", "schedule").
func (c *Collector) RecordReload(trigger string) {
	if !c.enabled() {
		return
	}
	c.loadMetrics.RecordReload(trigger)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// WriteTextfile writes every gathered metric to path in the text exposition
// format, for node exporter's textfile collector. The write is atomic.
func (c *Collector) WriteTextfile(path string) error {
	if c == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %q: %w", path, err)
	}
	return nil
}
