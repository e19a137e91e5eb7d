package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const retryInterval = 50 * time.Millisecond

// Releases the lock only if it is still owned by the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker is a Locker backed by SET NX PX, usable across API instances.
// The TTL bounds how long a crashed holder can block a key.
type RedisLocker struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisLocker(client redis.UniversalClient, prefix string, ttl time.Duration, log *zap.Logger) *RedisLocker {
	return &RedisLocker{client: client, prefix: prefix, ttl: ttl, log: log}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	fullKey := l.prefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(retryInterval)
	defer ticker.Stop()
	for {
		ok, err := l.client.SetNX(ctx, fullKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", fullKey, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}

	return func() {
		// Release with a fresh context so a cancelled request still frees the key.
		rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(rctx, l.client, []string{fullKey}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			l.log.Warn("failed to release lock", zap.String("key", fullKey), zap.Error(err))
		}
	}, nil
}
