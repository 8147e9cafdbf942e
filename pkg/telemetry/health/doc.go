// Package health serves liveness and readiness probes for watch mode.
//
// Readiness is the conjunction of named checks; chronicle registers one that
// passes once a world has been loaded and one that fails while the latest
// reload left documents unparsed.
//
//	checker := health.New(0)
//	checker.RegisterCheck("world", func(ctx context.Context) error { ... })
//	mux.Handle("/ready", checker.ReadinessHandler())
package health
