// Package worker runs periodic background jobs in-process.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/KasumiMercury/primind-jetlag/internal/observability/logging"
	"github.com/KasumiMercury/primind-jetlag/internal/service/dispatch"
)

const (
	DefaultDispatchSpec    = "@every 1m"
	DefaultDispatchTimeout = 50 * time.Second

	dispatchJobName = "dispatch-sweep"
	moduleWorker    = logging.Module("worker")
)

type Sweeper interface {
	Sweep(ctx context.Context, now time.Time) (*dispatch.Response, error)
}

// DispatchWorker runs a dispatch sweep on a cron schedule. A sweep still
// running when the next tick fires causes that tick to be skipped.
type DispatchWorker struct {
	cron    *cron.Cron
	sweeper Sweeper
	timeout time.Duration
	now     func() time.Time
}

func NewDispatchWorker(sweeper Sweeper, spec string, timeout time.Duration) (*DispatchWorker, error) {
	if spec == "" {
		spec = DefaultDispatchSpec
	}
	if timeout <= 0 {
		timeout = DefaultDispatchTimeout
	}

	logger := newCronLogger(slog.Default())
	w := &DispatchWorker{
		cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		sweeper: sweeper,
		timeout: timeout,
		now:     time.Now,
	}

	if _, err := w.cron.AddFunc(spec, w.RunOnce); err != nil {
		return nil, fmt.Errorf("invalid dispatch schedule %q: %w", spec, err)
	}

	return w, nil
}

func (w *DispatchWorker) Start() {
	slog.Info("dispatch worker started",
		slog.String("event", "worker.dispatch.start"),
	)
	w.cron.Start()
}

// Stop waits for a running sweep to finish or ctx to end.
func (w *DispatchWorker) Stop(ctx context.Context) error {
	done := w.cron.Stop()

	select {
	case <-done.Done():
		slog.Info("dispatch worker stopped",
			slog.String("event", "worker.dispatch.stop"),
		)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *DispatchWorker) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	ctx = logging.WithModule(ctx, moduleWorker)
	ctx = logging.WithJob(ctx, dispatchJobName)
	ctx = logging.WithRequestID(ctx, uuid.NewString())

	resp, err := w.sweeper.Sweep(ctx, w.now())
	if err != nil {
		slog.ErrorContext(ctx, "scheduled dispatch sweep failed",
			slog.String("event", "worker.dispatch.fail"),
			slog.String("error", err.Error()),
		)
		return
	}

	slog.DebugContext(ctx, "scheduled dispatch sweep finished",
		slog.String("run_id", resp.RunID),
		slog.Int("processed", resp.ProcessedCount),
		slog.Int("sent", resp.SentCount),
	)
}
