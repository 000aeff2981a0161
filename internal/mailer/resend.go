package mailer

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendMailer implements Mailer against the Resend API.
type ResendMailer struct {
	client   *resend.Client
	fromName string
	fromAddr string
}

// NewResendMailer creates a Resend-backed mailer.
func NewResendMailer(apiKey, fromName, fromAddr string) *ResendMailer {
	return &ResendMailer{
		client:   resend.NewClient(apiKey),
		fromName: fromName,
		fromAddr: fromAddr,
	}
}

// Send sends one email.
func (m *ResendMailer) Send(ctx context.Context, msg Message) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", m.fromName, m.fromAddr),
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	}

	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("send email to %s: %w", msg.To, err)
	}
	return nil
}
