package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"chronicle-hq/chronicle/pkg/cli"
	"chronicle-hq/chronicle/pkg/config"
	"chronicle-hq/chronicle/pkg/loader"
	"chronicle-hq/chronicle/pkg/snapshot"
	"chronicle-hq/chronicle/pkg/telemetry/metrics"
	"chronicle-hq/chronicle/pkg/telemetry/tracing"
)

// app holds what every loading command needs.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	collector *metrics.Collector
	tracer    *tracing.Tracer
	loader    *loader.Loader
}

func newApp(overrides ...func(*config.Config)) (*app, error) {
	cfg, err := loadConfig(overrides...)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg.Telemetry.Logging)
	if err != nil {
		return nil, err
	}
	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
	if err != nil {
		return nil, cli.NewConfigError("telemetry.tracing", err.Error())
	}
	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)

	l := loader.New(loader.OptionsFromConfig(cfg), logger).
		WithMetrics(collector).
		WithTracer(tracer)

	return &app{
		cfg:       cfg,
		logger:    logger,
		collector: collector,
		tracer:    tracer,
		loader:    l,
	}, nil
}

// close flushes pending spans.
func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.tracer.Shutdown(ctx); err != nil {
		a.logger.Warn("Tracer shutdown failed", "error", err)
	}
}

// persist writes the snapshot, the JSON export and the metrics textfile
// configured for a finished load. A snapshot whose content version is
// already stored is not written again.
func (a *app) persist(ctx context.Context, w *loader.World, result *loader.LoadResult) error {
	cfg := a.cfg.Snapshot
	if cfg.Enabled || cfg.JSONPath != "" {
		snap := snapshot.Build(w, result)

		if cfg.Enabled {
			if err := a.save(ctx, snap); err != nil {
				return err
			}
		}
		if cfg.JSONPath != "" {
			if err := snapshot.WriteJSONFile(cfg.JSONPath, snap, cfg.Compress); err != nil {
				return err
			}
			a.logger.Debug("Exported snapshot", "path", cfg.JSONPath, "compress", cfg.Compress)
		}
	}
	return a.collector.WriteTextfile(a.cfg.Telemetry.Metrics.Textfile)
}

func (a *app) save(ctx context.Context, snap *snapshot.Snapshot) error {
	store, err := snapshot.Open(&snapshot.Config{Path: a.cfg.Snapshot.Path, WALMode: true}, a.logger)
	if err != nil {
		return err
	}
	defer store.Close()

	prev, err := store.LatestVersion(ctx, snap.Run.Version)
	switch {
	case err == nil:
		a.logger.Info("Snapshot unchanged", "version", snap.Run.Version, "previous_run", prev.ID)
		return nil
	case !errors.Is(err, snapshot.ErrNotFound):
		return err
	}
	if err := store.Save(ctx, snap); err != nil {
		return err
	}
	a.logger.Info("Saved snapshot", "run_id", snap.Run.ID, "path", a.cfg.Snapshot.Path)
	return nil
}
