package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-jetlag/internal/observability/logging"
	"github.com/KasumiMercury/primind-jetlag/internal/service/dispatch"
)

type fakeSweeper struct {
	calls atomic.Int32
	err   error
	check func(ctx context.Context, now time.Time)
}

func (f *fakeSweeper) Sweep(ctx context.Context, now time.Time) (*dispatch.Response, error) {
	f.calls.Add(1)
	if f.check != nil {
		f.check(ctx, now)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &dispatch.Response{RunID: "run-1"}, nil
}

func TestRunOnce(t *testing.T) {
	fixed := time.Date(2026, 1, 20, 13, 5, 0, 0, time.UTC)

	sweeper := &fakeSweeper{
		check: func(ctx context.Context, now time.Time) {
			if !now.Equal(fixed) {
				t.Errorf("expected %v, got %v", fixed, now)
			}
			if logging.JobFromContext(ctx) != dispatchJobName {
				t.Errorf("job not set on context")
			}
			if _, ok := ctx.Deadline(); !ok {
				t.Error("sweep should run with a deadline")
			}
		},
	}

	w, err := NewDispatchWorker(sweeper, "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w.now = func() time.Time { return fixed }

	w.RunOnce()

	if sweeper.calls.Load() != 1 {
		t.Errorf("expected 1 sweep, got %d", sweeper.calls.Load())
	}
}

func TestRunOnceSwallowsErrors(t *testing.T) {
	sweeper := &fakeSweeper{err: errors.New("db down")}

	w, err := NewDispatchWorker(sweeper, "@every 1h", time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w.RunOnce()

	if sweeper.calls.Load() != 1 {
		t.Errorf("expected 1 sweep, got %d", sweeper.calls.Load())
	}
}

func TestNewDispatchWorkerRejectsBadSpec(t *testing.T) {
	if _, err := NewDispatchWorker(&fakeSweeper{}, "every now and then", 0); err == nil {
		t.Error("expected error for invalid spec")
	}
}

func TestStartStop(t *testing.T) {
	w, err := NewDispatchWorker(&fakeSweeper{}, "@every 1h", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := w.Stop(ctx); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
