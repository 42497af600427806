package redis

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"
)

// ErrTokenMismatch is returned when a stored token differs from the presented one
var ErrTokenMismatch = errors.New("redis: token mismatch")

var (
	setTokenValue    = Set
	getDelTokenValue = GetDel
)

// TokenStore keeps single-use tokens keyed by a subject such as an email address
type TokenStore struct {
	prefix string
	ttl    time.Duration
}

// NewTokenStore creates a token store that expires tokens after ttl
func NewTokenStore(prefix string, ttl time.Duration) *TokenStore {
	return &TokenStore{prefix: prefix, ttl: ttl}
}

// Issue stores token for subject, replacing any earlier one
func (s *TokenStore) Issue(ctx context.Context, subject, token string) error {
	return setTokenValue(ctx, s.prefix+subject, token, s.ttl)
}

// Consume removes the token for subject and checks it against token.
// A consumed token never validates twice, even on mismatch.
func (s *TokenStore) Consume(ctx context.Context, subject, token string) error {
	stored, err := getDelTokenValue(ctx, s.prefix+subject)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(token)) != 1 {
		return ErrTokenMismatch
	}
	return nil
}
