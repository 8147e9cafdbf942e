package metrics

import (
	"time"

	"chronicle-hq/chronicle/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// DocumentMetrics tracks individual document parses.
//
// Metrics:
//   - chronicle_loader_documents_total: Documents parsed by kind and status
//   - chronicle_loader_document_duration_seconds: Parse duration by kind
type DocumentMetrics struct {
	documentsTotal   *prometheus.CounterVec
	documentDuration *prometheus.HistogramVec
}

// NewDocumentMetrics creates and registers document metrics with the
// provided registry.
func NewDocumentMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *DocumentMetrics {
	dm := &DocumentMetrics{
		documentsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "documents_total",
				Help:      "Total number of documents parsed",
			},
			[]string{"kind", "status"},
		),

		documentDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "document_duration_seconds",
				Help:      "Duration of a single document parse in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14), // 100µs to ~800ms
			},
			[]string{"kind"},
		),
	}

	registry.MustRegister(dm.documentsTotal, dm.documentDuration)

	return dm
}

// RecordDocument records one parsed document.
func (dm *DocumentMetrics) RecordDocument(kind, status string, duration time.Duration) {
	dm.documentsTotal.WithLabelValues(kind, status).Inc()
	dm.documentDuration.WithLabelValues(kind).Observe(duration.Seconds())
}
