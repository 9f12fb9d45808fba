package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultLockTTL = 10 * time.Second
	lockRetry      = 25 * time.Millisecond
	lockPrefix     = "lock:tracking:"
)

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker serializes status evaluation for a tracking number across
// processes. Key format: lock:tracking:<tracking_number>
type Locker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLocker creates a Locker. A ttl <= 0 uses defaultLockTTL.
func NewLocker(client *redis.Client, ttl time.Duration) *Locker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &Locker{client: client, ttl: ttl}
}

// Lock polls SETNX until the key is acquired or ctx is done. The lock
// expires after the configured ttl if the holder never releases it.
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	k := lockPrefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(lockRetry)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, k, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("redis lock %s: %w", key, err)
		}
		if ok {
			return func() {
				_ = releaseScript.Run(context.Background(), l.client, []string{k}, token).Err()
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
