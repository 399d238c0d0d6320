// Package mail provides the transactional-email dispatch boundary.
package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// Mailer sends one transactional message to the configured destination.
type Mailer interface {
	Send(ctx context.Context, subject, body string) error
}

// ResendMailer dispatches mail through the Resend API.
type ResendMailer struct {
	client *resend.Client
	from   string
	to     string
}

// NewResendMailer creates a Resend-backed mailer with a fixed sender and
// destination.
func NewResendMailer(apiKey, from, to string) (*ResendMailer, error) {
	if apiKey == "" {
		return nil, errors.New("Resend API key is required")
	}
	if to == "" {
		return nil, errors.New("destination address is required")
	}

	return &ResendMailer{
		client: resend.NewClient(apiKey),
		from:   from,
		to:     to,
	}, nil
}

// Send dispatches one plain-text message. Never retried here; retry policy,
// if any, belongs to the Resend client itself.
func (m *ResendMailer) Send(ctx context.Context, subject, body string) error {
	_, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{m.to},
		Subject: subject,
		Text:    body,
	})
	if err != nil {
		return fmt.Errorf("resend send: %w", err)
	}
	return nil
}
