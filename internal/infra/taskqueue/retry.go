package taskqueue

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const defaultMaxRetries = 3

// withRetry runs op up to maxRetries times with exponential backoff starting
// at 100ms. Errors wrapped with backoff.Permanent stop immediately.
func withRetry(ctx context.Context, maxRetries int, taskID string, op func() error) error {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.Multiplier = 2
	b.RandomizationFactor = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(maxRetries-1)), ctx)

	return backoff.RetryNotify(op, policy, func(err error, wait time.Duration) {
		slog.DebugContext(ctx, "retrying task queue request",
			slog.String("task_id", taskID),
			slog.Duration("backoff", wait),
			slog.String("error", err.Error()),
		)
	})
}
