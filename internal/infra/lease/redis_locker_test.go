package lease

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-jetlag/internal/testutil"
)

func TestRedisLocker(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	locker := NewRedisLocker(client)

	t.Run("exclusive until released", func(t *testing.T) {
		token, ok, err := locker.Acquire(ctx, "jetlag:test:a", time.Minute)
		if err != nil || !ok {
			t.Fatalf("first acquire: ok=%v err=%v", ok, err)
		}

		if _, ok, err := locker.Acquire(ctx, "jetlag:test:a", time.Minute); err != nil || ok {
			t.Fatalf("second acquire should fail: ok=%v err=%v", ok, err)
		}

		if err := locker.Release(ctx, "jetlag:test:a", token); err != nil {
			t.Fatalf("unexpected release error: %v", err)
		}

		if _, ok, err := locker.Acquire(ctx, "jetlag:test:a", time.Minute); err != nil || !ok {
			t.Fatalf("acquire after release: ok=%v err=%v", ok, err)
		}
	})

	t.Run("foreign token cannot release", func(t *testing.T) {
		if _, ok, err := locker.Acquire(ctx, "jetlag:test:b", time.Minute); err != nil || !ok {
			t.Fatalf("acquire: ok=%v err=%v", ok, err)
		}

		if err := locker.Release(ctx, "jetlag:test:b", "someone-else"); !errors.Is(err, ErrLeaseNotHeld) {
			t.Errorf("expected ErrLeaseNotHeld, got %v", err)
		}

		if exists, _ := client.Exists(ctx, "jetlag:test:b").Result(); exists != 1 {
			t.Error("lease should still be held")
		}
	})

	t.Run("expires", func(t *testing.T) {
		if _, ok, err := locker.Acquire(ctx, "jetlag:test:c", 200*time.Millisecond); err != nil || !ok {
			t.Fatalf("acquire: ok=%v err=%v", ok, err)
		}

		time.Sleep(400 * time.Millisecond)

		if _, ok, err := locker.Acquire(ctx, "jetlag:test:c", time.Minute); err != nil || !ok {
			t.Errorf("expired lease should be acquirable: ok=%v err=%v", ok, err)
		}
	})
}
