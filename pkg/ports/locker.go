package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a distributed lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker coordinates session writes across replicas. It is only
// consulted by pkg/session when a locker is configured; single-instance
// deployments rely on the store's last-write-wins semantics.
type DistributedLocker interface {
	// Lock blocks until the lock for key is acquired, the context is
	// canceled, or the implementation gives up. The returned UnlockFunc MUST
	// be called to release the lock; the TTL is the safety net if the holder
	// dies.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
