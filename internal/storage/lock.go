package storage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Codelizard/HeroesOfCordan/pkg/storage"
)

const (
	lockPrefix       = "lock:"
	lockRetryDelay   = 25 * time.Millisecond
	lockReleaseLimit = 2 * time.Second
)

// releaseScript deletes the lock only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker implements storage.Locker across processes sharing one Redis.
// A lock expires after ttl, so a crashed holder cannot block a session
// forever.
type RedisLocker struct {
	client *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

var _ storage.Locker = (*RedisLocker)(nil)

func NewRedisLocker(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisLocker {
	return &RedisLocker{client: client, logger: logger, ttl: ttl}
}

func (l *RedisLocker) Lock(ctx context.Context, key storage.SessionKey) (func(), error) {
	lockKey := lockPrefix + key.String()
	token := uuid.NewString()

	ticker := time.NewTicker(lockRetryDelay)
	defer ticker.Stop()
	for {
		ok, err := l.client.SetNX(ctx, lockKey, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %s: %w", storage.ErrLockTimeout, key, ctx.Err())
			}
			return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s: %w", storage.ErrLockTimeout, key, ctx.Err())
		case <-ticker.C:
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() { l.release(lockKey, token) })
	}, nil
}

// release runs on its own context; the request context may already be done.
func (l *RedisLocker) release(lockKey, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), lockReleaseLimit)
	defer cancel()

	released, err := releaseScript.Run(ctx, l.client, []string{lockKey}, token).Int()
	if err != nil {
		l.logger.Error("Failed to release lock", "lock", lockKey, "error", err)
		return
	}
	if released == 0 {
		l.logger.Warn("Lock expired before release", "lock", lockKey, "ttl", l.ttl)
	}
}
