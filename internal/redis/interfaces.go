package redis

import (
	"context"
	"time"
)

// StateStoreInterface defines the interface for durable session state.
type StateStoreInterface interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any) error
}

// LockStoreInterface defines the interface for state-key locking.
type LockStoreInterface interface {
	AcquireKeyLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseKeyLock(ctx context.Context, key string) error
}

// Ensure concrete types implement interfaces.
var (
	_ StateStoreInterface = (*StateStore)(nil)
	_ LockStoreInterface  = (*LockStore)(nil)
)
