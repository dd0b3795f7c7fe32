package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=lock.go -destination=lock_mock.go -package=domain

// Locker hands out short-lived exclusive leases keyed by name.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	Release(ctx context.Context, key, token string) error
}
