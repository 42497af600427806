package usecases

import (
	"context"
	"time"

	"timecard.backend/pkg/redis"
)

// SMSSender delivers a text message to a 10-digit phone number
type SMSSender interface {
	Send(ctx context.Context, phone, body string) error
}

// Mailer delivers invitation and login links
type Mailer interface {
	SendInvite(ctx context.Context, email, link string) error
	SendMagicLink(ctx context.Context, email, link string) error
}

// ClockInLocker serializes clock-ins per assignment
type ClockInLocker interface {
	Acquire(ctx context.Context, key string) (func(context.Context) error, error)
}

// AttemptCounter limits repeated failures such as wrong verification codes
type AttemptCounter interface {
	Fail(ctx context.Context, key string) (int64, error)
	Reset(ctx context.Context, key string) error
}

// TokenStore keeps single-use login tokens
type TokenStore interface {
	Issue(ctx context.Context, subject, token string) error
	Consume(ctx context.Context, subject, token string) error
}

// SessionStore keeps server-side sessions for clients that do not hold tokens
type SessionStore interface {
	CreateSession(ctx context.Context, sessionID string, data *redis.SessionData, expiration time.Duration) error
	DeleteSession(ctx context.Context, sessionID string) error
}
