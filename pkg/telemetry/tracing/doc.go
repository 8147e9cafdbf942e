// Package tracing provides OpenTelemetry tracing for load runs.
//
// A load run opens a "loader.load" span with one child span per parsed
// document and one per link pass. Spans are exported over OTLP gRPC when
// telemetry.tracing is enabled; otherwise every span is a noop.
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
//	defer tracer.Shutdown(ctx)
//
//	ctx, span := tracer.Start(ctx, "loader.load")
//	defer span.End()
package tracing
