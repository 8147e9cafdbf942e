package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"chronicle-hq/chronicle/pkg/cli"
	"chronicle-hq/chronicle/pkg/config"
	"chronicle-hq/chronicle/pkg/loader"
	"chronicle-hq/chronicle/pkg/telemetry/health"
)

// Reload triggers, as recorded by the reloads metric.
const (
	triggerStartup  = "startup"
	triggerFile     = "file"
	triggerSchedule = "schedule"
)

var watchFlags struct {
	files    bool
	schedule string
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Load and reload the world as files change",
	Long: `Load the world, then reload it whenever a watched file changes and on
the configured cron schedule. Each reload is persisted like a load.

File watching covers the game folder, every mod folder and the folder of
setup.log. Changes are debounced by watch.debounce. When
telemetry.metrics.listen_address is set, metrics (and health probes when
telemetry.health.enabled) are served over HTTP.

Examples:
  # Watch files with the configured debounce
  chronicle watch

  # Reload every six hours only
  chronicle watch --files=false --schedule "0 */6 * * *"`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVar(&watchFlags.files, "files", true, "reload when files change (overrides watch.enabled)")
	watchCmd.Flags().StringVar(&watchFlags.schedule, "schedule", "", "cron schedule for reloads (overrides watch.schedule)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := newApp(func(cfg *config.Config) {
		if cmd.Flags().Changed("files") {
			cfg.Watch.Enabled = watchFlags.files
		} else if !cfg.Watch.Enabled && cfg.Watch.Schedule == "" && watchFlags.schedule == "" {
			cfg.Watch.Enabled = true
		}
		if watchFlags.schedule != "" {
			cfg.Watch.Schedule = watchFlags.schedule
		}
	})
	if err != nil {
		return err
	}
	defer a.close()

	if !a.cfg.Watch.Enabled && a.cfg.Watch.Schedule == "" {
		return cli.NewConfigError("watch", "nothing to watch: file watching is off and no schedule is set")
	}

	ctx, stop := cli.SignalContext(cmd.Context())
	defer stop()

	if err := a.reload(triggerStartup)(ctx); err != nil {
		return cli.NewCommandError("watch", err)
	}

	if addr := a.cfg.Telemetry.Metrics.ListenAddress; addr != "" {
		srv := a.server(addr)
		go func() {
			a.logger.Info("Serving metrics", "address", addr, "path", a.cfg.Telemetry.Metrics.Path)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("HTTP server failed", "error", err)
				stop()
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				a.logger.Warn("HTTP server shutdown failed", "error", err)
			}
		}()
	}

	scheduler := loader.NewScheduler(a.cfg.Watch.Schedule, a.reload(triggerSchedule), a.logger)
	if err := scheduler.Start(ctx); err != nil {
		return cli.NewConfigError("watch.schedule", err.Error())
	}
	defer scheduler.Stop()

	if a.cfg.Watch.Enabled {
		watcher, err := loader.NewWatcher(a.loader.WatcherConfigFor(a.cfg.Watch), a.logger)
		if err != nil {
			return cli.NewCommandError("watch", err)
		}
		defer func() {
			if err := watcher.Stop(); err != nil {
				a.logger.Warn("File watcher shutdown failed", "error", err)
			}
		}()
		// Watch returns once ctx is cancelled.
		if err := watcher.Watch(ctx, a.reload(triggerFile)); err != nil {
			return cli.NewCommandError("watch", err)
		}
		return nil
	}

	<-ctx.Done()
	a.logger.Info("Stopping")
	return nil
}

// reload returns a reload callback that counts the trigger, loads and
// persists. A failed load keeps the previous world.
func (a *app) reload(trigger string) loader.ReloadFunc {
	return func(ctx context.Context) error {
		a.collector.RecordReload(trigger)
		w, result, err := a.loader.Load(ctx)
		if err != nil {
			return err
		}
		return a.persist(ctx, w, result)
	}
}

// server serves metrics, and the health probes when enabled. Readiness
// requires a loaded world.
func (a *app) server(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(a.cfg.Telemetry.Metrics.Path, a.collector.Handler())

	if hc := a.cfg.Telemetry.Health; hc.Enabled {
		checker := health.New(0)
		checker.RegisterCheck("world", func(context.Context) error {
			if a.loader.World() == nil {
				return errors.New("no world loaded")
			}
			return nil
		})
		mux.HandleFunc(hc.LivenessPath, checker.LivenessHandler())
		mux.HandleFunc(hc.ReadinessPath, checker.ReadinessHandler())
	}

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
