// Package mailer provides a provider-agnostic interface for delivering
// enquiry emails, with an SMTP implementation for production and a
// disk-writing sender for local development.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
)

var (
	// ErrInvalidMessage indicates the message failed validation before any
	// delivery attempt was made.
	ErrInvalidMessage = errors.New("invalid message")

	// ErrSendFailed indicates the underlying transport reported a failure.
	ErrSendFailed = errors.New("failed to send email")
)

// Attachment is a named binary blob forwarded verbatim with the message.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Message is a composed email ready for delivery. At most one attachment.
type Message struct {
	From       string
	To         string
	Subject    string
	TextBody   string
	HTMLBody   string
	Attachment *Attachment
}

// Validate checks the fields required for any transport to deliver the message.
func (m *Message) Validate() error {
	if m.From == "" {
		return fmt.Errorf("%w: from address is required", ErrInvalidMessage)
	}
	if _, err := mail.ParseAddress(m.From); err != nil {
		return fmt.Errorf("%w: invalid from address %q", ErrInvalidMessage, m.From)
	}
	if m.To == "" {
		return fmt.Errorf("%w: to address is required", ErrInvalidMessage)
	}
	if _, err := mail.ParseAddress(m.To); err != nil {
		return fmt.Errorf("%w: invalid to address %q", ErrInvalidMessage, m.To)
	}
	if m.TextBody == "" && m.HTMLBody == "" {
		return fmt.Errorf("%w: empty body", ErrInvalidMessage)
	}
	if m.Attachment != nil && m.Attachment.Filename == "" {
		return fmt.Errorf("%w: attachment filename is required", ErrInvalidMessage)
	}
	return nil
}

// Sender delivers a composed message. Implementations report success or
// failure only; retries and queuing are out of scope.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}
