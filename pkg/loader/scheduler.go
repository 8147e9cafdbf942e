package loader

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"chronicle-hq/chronicle/pkg/telemetry/logging"
)

// Scheduler reloads on a cron schedule, for game folders on storage where
// file events are not delivered.
//
// Common expressions:
//   - "*/15 * * * *" - every 15 minutes
//   - "0 * * * *"    - hourly
//   - "@every 30s"   - every 30 seconds
type Scheduler struct {
	schedule string
	onReload ReloadFunc
	cron     *cron.Cron
	entry    cron.EntryID
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
}

// NewScheduler creates a scheduler calling onReload on schedule.
func NewScheduler(schedule string, onReload ReloadFunc, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		schedule: schedule,
		onReload: onReload,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logging.OrDefault(logger).With("component", "loader.scheduler"),
	}
}

// Start schedules reloads until ctx is cancelled or Stop is called. An empty
// schedule does nothing.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info("reload schedule not configured, skipping scheduler")
		return nil
	}
	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	id, err := s.cron.AddFunc(s.schedule, func() {
		s.run(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reload: %w", err)
	}
	s.entry = id

	s.cron.Start()
	s.running = true
	s.stopCh = make(chan struct{})
	s.logger.Info("reload scheduler started", "schedule", s.schedule)

	go func(stop <-chan struct{}) {
		select {
		case <-ctx.Done():
			s.Stop()
		case <-stop:
		}
	}(s.stopCh)
	return nil
}

func (s *Scheduler) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	s.logger.Info("starting scheduled reload")
	start := time.Now()
	if err := s.onReload(ctx); err != nil {
		s.logger.Error("scheduled reload failed", "error", err)
		return
	}
	s.logger.Debug("scheduled reload completed", "duration_ms", time.Since(start).Milliseconds())
}

// Stop stops the scheduler and waits for a running reload to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		close(s.stopCh)
		<-s.cron.Stop().Done()
		s.cron.Remove(s.entry)
		s.running = false
		s.logger.Info("reload scheduler stopped")
	}
}

// IsRunning reports whether reloads are scheduled.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// NextRun returns the time of the next scheduled reload, or the zero time
// when the scheduler is not running.
func (s *Scheduler) NextRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return time.Time{}
	}
	return s.cron.Entry(s.entry).Next
}
