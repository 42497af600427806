package sms

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	api "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
	"timecard.backend/internal/config"
	"timecard.backend/pkg/logger"
)

// countryPrefix is prepended to the stored 10-digit numbers
const countryPrefix = "+1"

type messageCreator interface {
	CreateMessage(params *api.CreateMessageParams) (*api.ApiV2010Message, error)
}

// TwilioSender delivers text messages through the Twilio Messages API
type TwilioSender struct {
	api  messageCreator
	from string
}

// NewTwilioSender builds a sender from account credentials
func NewTwilioSender(cfg config.SMSConfig) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &TwilioSender{api: client.Api, from: cfg.FromPhone}
}

// Send texts body to a 10-digit US phone number
func (s *TwilioSender) Send(ctx context.Context, phone, body string) error {
	params := &api.CreateMessageParams{}
	params.SetTo(countryPrefix + phone)
	params.SetFrom(s.from)
	params.SetBody(body)

	msg, err := s.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send sms: %w", err)
	}

	sid := ""
	if msg != nil && msg.Sid != nil {
		sid = *msg.Sid
	}
	logger.Debug(ctx, "SMS sent", zap.String("sid", sid))
	return nil
}

// LogSender writes messages to the log instead of sending them.
// Used when Twilio credentials are not configured.
type LogSender struct{}

// Send logs the message
func (LogSender) Send(ctx context.Context, phone, body string) error {
	logger.Info(ctx, "SMS delivery disabled, message logged",
		zap.String("to", countryPrefix+phone),
		zap.String("body", body),
	)
	return nil
}
