// Package lease implements short-lived exclusive leases on Redis.
package lease

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-jetlag/internal/domain"
)

var ErrLeaseNotHeld = errors.New("lease not held")

// releaseScript deletes the key only while it still holds the caller's token,
// so an expired lease taken over by someone else is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisLocker struct {
	client redis.UniversalClient
}

func NewRedisLocker(client redis.UniversalClient) domain.Locker {
	return &redisLocker{
		client: client,
	}
}

func (l *redisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("acquire lease %s: %w", key, err)
	}
	if !ok {
		return "", false, nil
	}

	return token, true, nil
}

// Release returns ErrLeaseNotHeld when the lease expired or belongs to
// another holder.
func (l *redisLocker) Release(ctx context.Context, key, token string) error {
	n, err := releaseScript.Run(ctx, l.client, []string{key}, token).Int()
	if err != nil {
		return fmt.Errorf("release lease %s: %w", key, err)
	}
	if n == 0 {
		return fmt.Errorf("release lease %s: %w", key, ErrLeaseNotHeld)
	}

	return nil
}
