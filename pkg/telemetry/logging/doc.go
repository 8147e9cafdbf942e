// Package logging builds the structured loggers used across chronicle.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - JSON and text output selected by configuration
//   - Configurable log levels (debug, info, warn, error)
//   - Context-aware records that carry the load run ID and current document
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	ctx = logging.WithRunID(ctx, runID.String())
//	logger.InfoContext(ctx, "Load complete", "titles", 1234)
//	// {"level":"INFO","msg":"Load complete","titles":1234,"run_id":"..."}
package logging
