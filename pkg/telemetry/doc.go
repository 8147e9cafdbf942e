// Package telemetry groups chronicle's observability packages.
//
//   - logging: slog loggers with run and document context
//   - metrics: Prometheus metrics for load runs and documents
//   - tracing: OpenTelemetry spans around loads
//   - health: liveness and readiness probes for watch mode
package telemetry
