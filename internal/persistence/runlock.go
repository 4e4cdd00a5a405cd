package persistence

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const runLockPrefix = "helpdesk:triage:run:"

// RedisRunLock is a per-ticket single-flight guard backed by Redis SETNX.
// The TTL bounds how long a crashed run can hold its lock.
type RedisRunLock struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRunLock builds the lock. Returns nil when no client is available,
// in which case callers run unguarded (last write wins).
func NewRedisRunLock(client *redis.Client, ttl time.Duration) *RedisRunLock {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RedisRunLock{client: client, ttl: ttl}
}

// TryLock attempts to acquire the run lock for a ticket. ok is false when
// another run currently holds it.
func (l *RedisRunLock) TryLock(ctx context.Context, ticketID string) (func(), bool, error) {
	key := runLockPrefix + ticketID
	acquired, err := l.client.SetNX(ctx, key, "1", l.ttl).Result()
	if err != nil {
		return nil, false, err
	}
	if !acquired {
		return nil, false, nil
	}
	release := func() {
		l.client.Del(context.WithoutCancel(ctx), key)
	}
	return release, true, nil
}
