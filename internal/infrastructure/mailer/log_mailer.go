package mailer

import (
	"context"

	"go.uber.org/zap"
	"timecard.backend/pkg/logger"
)

// LogMailer records outgoing links in the structured log. The service has no
// mail transport of its own; deployments pick the links up from the log sink.
type LogMailer struct{}

// NewLogMailer creates a mailer
func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

// SendInvite delivers a signup link
func (m *LogMailer) SendInvite(ctx context.Context, email, link string) error {
	logger.Info(ctx, "Invite email queued", zap.String("email", email), zap.String("link", link))
	return nil
}

// SendMagicLink delivers a one-time login link
func (m *LogMailer) SendMagicLink(ctx context.Context, email, link string) error {
	logger.Info(ctx, "Magic link email queued", zap.String("email", email), zap.String("link", link))
	return nil
}
