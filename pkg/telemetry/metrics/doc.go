// Package metrics provides Prometheus metrics for chronicle load runs.
//
// # Metrics
//
//   - Load metrics: runs by status, run duration, files per run,
//     diagnostics by type, entity counts, reloads by trigger
//   - Document metrics: documents parsed by kind and status, parse duration
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	collector.RecordDocument("titles", "success", 12*time.Millisecond)
//	collector.RecordLoad("success", 2*time.Second, 812, 0)
//
//	// Watch mode
//	mux.Handle("/metrics", collector.Handler())
//
//	// Batch mode
//	collector.WriteTextfile("/var/lib/node_exporter/chronicle.prom")
//
// A nil *Collector records nothing.
package metrics
