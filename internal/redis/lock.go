package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockStore serializes read-modify-write cycles against state keys so two
// concurrent mutations cannot produce a lost update.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquireKeyLock attempts to acquire a lock for the given state key.
// Returns true if the lock was acquired, false if already held.
func (s *LockStore) AcquireKeyLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	lockKey := fmt.Sprintf("lock:state:%s", key)

	ok, err := s.client.SetNX(ctx, lockKey, "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// ReleaseKeyLock releases the lock for the given state key.
func (s *LockStore) ReleaseKeyLock(ctx context.Context, key string) error {
	lockKey := fmt.Sprintf("lock:state:%s", key)

	return s.client.Del(ctx, lockKey).Err()
}
