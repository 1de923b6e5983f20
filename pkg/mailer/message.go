package mailer

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
)

// Sender delivers a single message. Implementations must be safe for
// concurrent use.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// Message is a fully prepared email.
type Message struct {
	From    string            // overrides the transport default sender
	To      []string          // at least one
	ReplyTo string            // optional
	Subject string            // single line
	HTML    string            // HTML part
	Text    string            // plain-text alternative
	Tag     string            // provider tag or category
	Headers map[string]string // extra headers, e.g. X-Request-ID
}

// Validate checks the fields every transport needs. Header values must not
// contain line breaks.
func (m *Message) Validate() error {
	if len(m.To) == 0 {
		return ErrNoRecipient
	}
	for _, to := range m.To {
		if strings.TrimSpace(to) == "" {
			return ErrNoRecipient
		}
	}
	if strings.TrimSpace(m.Subject) == "" {
		return ErrNoSubject
	}
	if m.HTML == "" && m.Text == "" {
		return ErrNoContent
	}
	for name, value := range map[string]string{"Subject": m.Subject, "Reply-To": m.ReplyTo, "From": m.From} {
		if strings.ContainsAny(value, "\r\n") {
			return fmt.Errorf("%w: %s contains a line break", ErrSendFailed, name)
		}
	}
	return nil
}

// Address formats a display name and email as an RFC 5322 address.
// Without a name the bare address is returned.
func Address(name, email string) string {
	if name == "" {
		return email
	}
	return (&mail.Address{Name: name, Address: email}).String()
}
