package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CycleLock is a redis SETNX lock guarding against overlapping dispatch cycles.
// The TTL bounds how long a crashed holder can block the next cycle.
type CycleLock struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	token  string
}

func NewCycleLock(client *redis.Client, key string, ttl time.Duration) *CycleLock {
	if key == "" {
		key = "dispatch:cycle:lock"
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CycleLock{
		client: client,
		key:    key,
		ttl:    ttl,
		token:  uuid.New().String(),
	}
}

// Acquire takes the lock. Returns false when another invocation holds it.
func (l *CycleLock) Acquire(ctx context.Context) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key, l.token, l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire cycle lock: %w", err)
	}
	return ok, nil
}

// Release drops the lock if this instance still holds it. A lock stolen after
// TTL expiry is left alone.
func (l *CycleLock) Release(ctx context.Context) error {
	const script = `
		if redis.call("GET", KEYS[1]) == ARGV[1] then
			return redis.call("DEL", KEYS[1])
		end
		return 0
	`
	if err := l.client.Eval(ctx, script, []string{l.key}, l.token).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("failed to release cycle lock: %w", err)
	}
	return nil
}
