package redis

import (
	"context"
	"time"
)

var (
	incrAttempts  = IncrWindow
	clearAttempts = Del
)

// AttemptCounter counts failures per key inside a fixed window
type AttemptCounter struct {
	prefix string
	window time.Duration
}

// NewAttemptCounter creates a counter that forgets failures window after the first one
func NewAttemptCounter(prefix string, window time.Duration) *AttemptCounter {
	return &AttemptCounter{prefix: prefix, window: window}
}

// Fail records a failure for key and returns how many were seen in the current window
func (c *AttemptCounter) Fail(ctx context.Context, key string) (int64, error) {
	return incrAttempts(ctx, c.prefix+key, c.window)
}

// Reset drops the failures recorded for key
func (c *AttemptCounter) Reset(ctx context.Context, key string) error {
	return clearAttempts(ctx, c.prefix+key)
}
