package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"artisan_escrow/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrLockTimeout is returned when a project lock could not be acquired
// within the configured wait.
var ErrLockTimeout = errors.New("timed out waiting for project lock")

const keyPrefix = "lock:project:"

const retryInterval = 25 * time.Millisecond

// releaseScript deletes the key only if it still holds our token, so an
// expired lock re-acquired by another holder is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// RedisLocker serializes project transitions across API replicas.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
	logger *zap.Logger
}

var _ interfaces.IProjectLocker = (*RedisLocker)(nil)

// NewRedisLocker returns a locker whose keys expire after ttl. Acquisition
// retries for up to wait; zero waits until the context is done.
func NewRedisLocker(client *redis.Client, ttl, wait time.Duration, logger *zap.Logger) *RedisLocker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisLocker{client: client, ttl: ttl, wait: wait, logger: logger}
}

func (l *RedisLocker) Lock(ctx context.Context, projectID string) (func(), error) {
	key := keyPrefix + projectID
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", key, err)
		}
		if ok {
			break
		}
		if l.wait > 0 && time.Now().After(deadline) {
			return nil, ErrLockTimeout
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}

	return func() {
		// The caller's context may already be cancelled; release regardless.
		if err := releaseScript.Run(context.Background(), l.client, []string{key}, token).Err(); err != nil {
			l.logger.Warn("[lock][redis] release failed", zap.String("project_id", projectID), zap.Error(err))
		}
	}, nil
}
