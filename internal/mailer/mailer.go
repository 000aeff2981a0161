// Package mailer abstracts the transactional email provider.
package mailer

import "context"

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Mailer sends a single message. Implementations are expected to be safe for
// retries; deduplication is not provided.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
