package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisLockTTL     = 10 * time.Minute
	redisAcquireWait = 5 * time.Second
	redisPollEvery   = 100 * time.Millisecond
)

// RedisLockManager implements the lock manager on SETNX keys with a TTL so a
// crashed holder cannot wedge the lock forever.
type RedisLockManager struct {
	client   *redis.Client
	instance string
}

func NewRedisLockManager(client *redis.Client, instance string) *RedisLockManager {
	return &RedisLockManager{
		client:   client,
		instance: instance,
	}
}

func (l *RedisLockManager) Acquire(lockID int) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisAcquireWait)
	defer cancel()

	key := l.key(lockID)
	for {
		ok, err := l.client.SetNX(ctx, key, l.instance, redisLockTTL).Result()
		if err != nil {
			return fmt.Errorf("failed to acquire lock: %w", err)
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("failed to acquire lock %d: %w", lockID, ctx.Err())
		case <-time.After(redisPollEvery):
		}
	}
}

func (l *RedisLockManager) Release(lockID int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := l.client.Del(ctx, l.key(lockID)).Err(); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return nil
}

func (l *RedisLockManager) key(lockID int) string {
	return fmt.Sprintf("jobfire:lock:%d", lockID)
}
