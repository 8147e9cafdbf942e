package loader

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"chronicle-hq/chronicle/pkg/config"
	"chronicle-hq/chronicle/pkg/telemetry/logging"
)

// ReloadFunc is called after a batch of changes has settled.
type ReloadFunc func(ctx context.Context) error

// WatcherConfig selects what a Watcher observes.
type WatcherConfig struct {
	// Paths are the files and folders to watch; folders are watched
	// recursively
	Paths []string

	// Debounce is the quiet period after the last change before a reload
	Debounce time.Duration

	// Extensions are the file extensions whose changes count
	Extensions []string
}

// WatchPaths returns the game folder, every mod folder and the folder of the
// setup log, the inputs a reload depends on. Mods that cannot be read and
// paths that do not exist are left out; the next load reports them.
func (l *Loader) WatchPaths() []string {
	paths := []string{l.opts.GameDir}
	for _, p := range l.opts.Mods {
		paths = append(paths, filepath.Dir(p))
	}
	if _, roots, err := readMods(l.opts.Mods, l.opts.MaxFileSize); err == nil {
		paths = append(paths, roots...)
	}
	if l.opts.SetupLog != "" {
		paths = append(paths, filepath.Dir(l.opts.SetupLog))
	}
	paths = slices.DeleteFunc(paths, func(p string) bool {
		_, err := os.Stat(p)
		return err != nil
	})
	slices.Sort(paths)
	return slices.Compact(paths)
}

// WatcherConfigFor builds a watcher configuration for l from cfg.
func (l *Loader) WatcherConfigFor(cfg config.WatchConfig) *WatcherConfig {
	return &WatcherConfig{
		Paths:      l.WatchPaths(),
		Debounce:   cfg.Debounce,
		Extensions: cfg.Extensions,
	}
}

// Watcher reloads when watched game files change. Bursts of changes are
// collapsed into one reload by a Debouncer.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	config   *WatcherConfig
	debounce *Debouncer

	// Serializes reloads
	reloadMu sync.Mutex

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewWatcher creates a watcher. Extensions default to
// config.DefaultWatchExtensions.
func NewWatcher(cfg *WatcherConfig, logger *slog.Logger) (*Watcher, error) {
	if cfg == nil || len(cfg.Paths) == 0 {
		return nil, fmt.Errorf("watcher needs at least one path")
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = config.DefaultWatchExtensions
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		watcher:  fw,
		logger:   logging.OrDefault(logger),
		config:   cfg,
		debounce: NewDebouncer(cfg.Debounce),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Watch blocks until ctx is cancelled or Stop is called, calling onReload
// once changes settle. Reload errors are logged and watching continues.
func (w *Watcher) Watch(ctx context.Context, onReload ReloadFunc) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	select {
	case <-w.doneCh:
		w.mu.Unlock()
		return fmt.Errorf("watcher already stopped")
	default:
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.debounce.Stop()
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(w.doneCh)
	}()

	for _, p := range w.config.Paths {
		if err := w.addPath(p); err != nil {
			return fmt.Errorf("failed to watch %q: %w", p, err)
		}
	}

	w.logger.Info("File watcher started",
		"paths", len(w.config.Paths),
		"debounce_ms", w.config.Debounce.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("File watcher stopped (context cancelled)")
			return nil

		case <-w.stopCh:
			w.logger.Info("File watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			// New folders inside a watched tree are watched too.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addPath(event.Name); err != nil {
						w.logger.Warn("Failed to watch new folder", "path", event.Name, "error", err)
					}
				}
			}

			if !w.shouldProcess(event) {
				continue
			}

			w.logger.Debug("File event detected",
				"path", event.Name,
				"op", event.Op.String(),
			)

			w.debounce.Trigger(func() {
				w.reload(ctx, event, onReload)
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("File watcher error", "error", err)
		}
	}
}

func (w *Watcher) reload(ctx context.Context, event fsnotify.Event, onReload ReloadFunc) {
	w.reloadMu.Lock()
	defer w.reloadMu.Unlock()

	if ctx.Err() != nil {
		return
	}
	w.logger.Info("Triggering reload",
		"path", event.Name,
		"op", event.Op.String(),
	)
	if err := onReload(ctx); err != nil {
		w.logger.Error("Reload failed", "error", err)
	}
}

// Stop stops a running watcher and releases the fsnotify watcher. It is
// safe to call on a watcher that never ran.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	running := w.running
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}

	// Wait for a reload already in progress.
	w.reloadMu.Lock()
	defer w.reloadMu.Unlock()

	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

// addPath watches a file, or a folder and its subfolders.
func (w *Watcher) addPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return w.watcher.Add(path)
	}

	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && p != path {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(p); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", p, err)
		}
		return nil
	})
}

// shouldProcess reports whether event may change the loaded world.
func (w *Watcher) shouldProcess(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(event.Name))
	return slices.ContainsFunc(w.config.Extensions, func(e string) bool {
		return strings.ToLower(e) == ext
	})
}

// Debouncer runs the latest callback once no new trigger has arrived for
// the interval.
type Debouncer struct {
	interval time.Duration
	timer    *time.Timer
	mu       sync.Mutex
	callback func()
	stopped  bool
	wg       sync.WaitGroup
}

// NewDebouncer creates a debouncer.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// Trigger schedules callback, replacing any pending one.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.callback = callback

	if d.timer != nil && d.timer.Stop() {
		d.wg.Done()
	}
	d.wg.Add(1)
	d.timer = time.AfterFunc(d.interval, func() {
		defer d.wg.Done()
		d.mu.Lock()
		cb := d.callback
		stopped := d.stopped
		d.mu.Unlock()

		if cb != nil && !stopped {
			cb()
		}
	})
}

// Stop cancels the pending callback and waits for a running one to return.
// Later triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	if d.timer != nil && d.timer.Stop() {
		d.wg.Done()
	}
	d.timer = nil
	d.callback = nil
	d.mu.Unlock()

	d.wg.Wait()
}
