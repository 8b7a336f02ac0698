package ports

import (
	"context"
	"time"
)

// SubscriptionRepository is used by the expiry sweep.
type SubscriptionRepository interface {
	// ExpireDue flips every unexpired subscription whose expiry is before now and
	// returns how many documents changed. Re-running it is a no-op.
	ExpireDue(ctx context.Context, now time.Time) (int64, error)
}

// Locker grants a time-bounded exclusive lease across instances.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}
