package events

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/event-horizon/common/errs"
	"github.com/gaze-network/event-horizon/core"
	"github.com/gaze-network/event-horizon/pkg/logger"
	"github.com/gaze-network/event-horizon/pkg/logger/slogx"
)

// Make sure Worker implements the core.Worker interface
var _ core.Worker = (*Worker)(nil)

// Refresher reloads the store.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Worker refreshes the store on start and then every interval. A zero
// interval only does the initial refresh.
type Worker struct {
	refresher    Refresher
	interval     time.Duration
	cleanupFuncs []func(context.Context) error

	started  atomic.Bool
	quitOnce sync.Once
	quit     chan struct{}
	done     chan struct{}
}

func NewWorker(refresher Refresher, interval time.Duration, cleanupFuncs ...func(context.Context) error) *Worker {
	return &Worker{
		refresher:    refresher,
		interval:     interval,
		cleanupFuncs: cleanupFuncs,
		quit:         make(chan struct{}),
		done:         make(chan struct{}),
	}
}

func (w *Worker) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return errors.Wrap(errs.SomethingWentWrong, "worker is already running")
	}
	defer close(w.done)

	ctx = logger.WithContext(ctx,
		slog.String("package", "events"),
		slog.String("worker", "refresh"),
	)

	w.refresh(ctx)

	var tick <-chan time.Time
	if w.interval > 0 {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		tick = ticker.C
	}
	for {
		select {
		case <-w.quit:
			logger.InfoContext(ctx, "Got quit signal, stopping refresh worker")
			return nil
		case <-ctx.Done():
			return nil
		case <-tick:
			w.refresh(ctx)
			logger.DebugContext(ctx, "Waiting for next refresh interval")
		}
	}
}

// refresh logs failures and keeps the worker running.
func (w *Worker) refresh(ctx context.Context) {
	start := time.Now()
	if err := w.refresher.Refresh(ctx); err != nil {
		logger.ErrorContext(ctx, "Failed to refresh events", slogx.Error(err))
		return
	}
	logger.InfoContext(ctx, "Refreshed events", slogx.Duration("duration", time.Since(start)))
}

func (w *Worker) Shutdown() error {
	return w.ShutdownWithContext(context.Background())
}

func (w *Worker) ShutdownWithTimeout(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return w.ShutdownWithContext(ctx)
}

// ShutdownWithContext stops the worker, waits for the running refresh and
// releases the module's resources.
func (w *Worker) ShutdownWithContext(ctx context.Context) (err error) {
	w.quitOnce.Do(func() {
		close(w.quit)
		if w.started.Load() {
			select {
			case <-w.done:
			case <-ctx.Done():
				err = errors.Wrap(ctx.Err(), "refresh worker shutdown context canceled")
				return
			}
		}
		for _, cleanup := range w.cleanupFuncs {
			if cerr := cleanup(ctx); cerr != nil {
				err = errors.Join(err, errors.Wrap(cerr, "cleanup failed"))
			}
		}
	})
	return
}
