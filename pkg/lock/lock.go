// Package lock provides a redis-backed mutex guarding the expiry sweep so
// that two scheduled notifier invocations can't overlap.
package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisTimeout = 300 * time.Millisecond

// releaseScript deletes the key only if it still holds our token, so an
// expired lock re-acquired by another run is never released by us.
var releaseScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	end
	return 0
`)

type Mutex struct {
	Redis *redis.Client
	Key   string
	TTL   time.Duration

	token string
}

// Acquire tries to take the lock. It returns false without error when the
// lock is held by someone else.
func (m *Mutex) Acquire(ctx context.Context) (bool, error) {
	var cancel context.CancelFunc
	ctx, cancel = context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	m.token = uuid.NewString()

	ok, err := m.Redis.SetNX(ctx, m.Key, m.token, m.TTL).Result()
	if err != nil {
		return false, fmt.Errorf("can't acquire lock %s: %w", m.Key, err)
	}

	return ok, nil
}

// Release gives the lock back. Releasing a lock that already expired is not
// an error.
func (m *Mutex) Release(ctx context.Context) error {
	var cancel context.CancelFunc
	ctx, cancel = context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	if err := releaseScript.Run(ctx, m.Redis, []string{m.Key}, m.token).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("can't release lock %s: %w", m.Key, err)
	}

	return nil
}
