package redis

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrLockHeld is returned when another holder owns the lock
var ErrLockHeld = errors.New("redis: lock held by another owner")

var (
	acquireLockValue = SetNX
	releaseLockValue = DelIfEquals
)

// Locker hands out short-lived mutual exclusion keyed by an arbitrary id.
// Each acquisition stores a random owner token so a holder whose TTL lapsed
// cannot release a lock that was since taken by someone else.
type Locker struct {
	prefix string
	ttl    time.Duration
}

// NewLocker creates a locker that namespaces keys with prefix
func NewLocker(prefix string, ttl time.Duration) *Locker {
	return &Locker{prefix: prefix, ttl: ttl}
}

// Acquire takes the lock for key or fails with ErrLockHeld.
// The returned func releases it and is safe to call more than once.
func (l *Locker) Acquire(ctx context.Context, key string) (func(context.Context) error, error) {
	owner := uuid.NewString()
	ok, err := acquireLockValue(ctx, l.prefix+key, owner, l.ttl)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLockHeld
	}

	released := false
	return func(ctx context.Context) error {
		if released {
			return nil
		}
		released = true
		_, err := releaseLockValue(ctx, l.prefix+key, owner)
		return err
	}, nil
}
