package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/bnema/studypomo/internal/adapters/watch"
)

// syncLoop drains the offline queue in the background: once on start, on
// every Trigger, when another process writes the queue and on each probe
// tick so connectivity coming back is noticed.
type syncLoop struct {
	app      *app
	interval time.Duration
	trigger  chan struct{}
	report   func(error)
}

func newSyncLoop(app *app) *syncLoop {
	interval := app.cfg.ProbeInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &syncLoop{
		app:      app,
		interval: interval,
		trigger:  make(chan struct{}, 1),
	}
}

// Trigger requests a sync without blocking. Requests made while one is
// already pending collapse into it.
func (l *syncLoop) Trigger() {
	select {
	case l.trigger <- struct{}{}:
	default:
	}
}

func (l *syncLoop) Run(ctx context.Context) error {
	watcher := watch.New(l.app.cfg.DataDir, []string{"queue.db"}, watch.DefaultDebounce, l.app.logger)
	if err := watcher.Start(l.Trigger); err != nil {
		l.app.logger.Warn("queue watcher unavailable", slog.Any("error", err))
	} else {
		defer func() { _ = watcher.Stop() }()
	}

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.sync(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-l.trigger:
			l.sync(ctx)
		case <-ticker.C:
			l.sync(ctx)
		}
	}
}

func (l *syncLoop) sync(ctx context.Context) {
	report, err := l.app.sync.Sync(ctx)
	if l.report != nil {
		l.report(err)
	}
	if err != nil {
		if ctx.Err() == nil {
			l.app.logger.Warn("background sync failed", slog.Any("error", err))
		}
		return
	}

	drain := report.Drain
	if drain.Skipped {
		l.app.logger.Debug("background sync skipped", slog.String("reason", drain.Reason), slog.Int("pending", drain.Remaining))
		return
	}
	if drain.Delivered > 0 || drain.Failed > 0 {
		l.app.logger.Info("background sync",
			slog.Int("delivered", drain.Delivered),
			slog.Int("failed", drain.Failed),
			slog.Int("pending", drain.Remaining),
		)
	}
}
