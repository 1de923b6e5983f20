package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"

	"github.com/jordan-wright/email"
)

// SMTPConfig holds the SMTP session settings.
type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASS"`
	// Secure switches to implicit TLS (port 465). Otherwise STARTTLS is used
	// when the server advertises it.
	Secure bool `env:"SMTP_SECURE" envDefault:"false"`
}

// SMTPSender delivers messages over SMTP.
type SMTPSender struct {
	cfg  SMTPConfig
	from string
	auth smtp.Auth
}

// NewSMTPSender creates an SMTP sender. from is used when a message has no
// From of its own.
func NewSMTPSender(cfg SMTPConfig, from string) (*SMTPSender, error) {
	if cfg.Host == "" || cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("%w: SMTP_HOST, SMTP_USER and SMTP_PASS are required", ErrNotConfigured)
	}
	if from == "" {
		return nil, fmt.Errorf("%w: sender address is required", ErrNotConfigured)
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &SMTPSender{
		cfg:  cfg,
		from: from,
		auth: smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host),
	}, nil
}

func (s *SMTPSender) Name() string { return string(TransportSMTP) }

// Send implements Sender. The SMTP client has no context support, so the
// send runs in its own goroutine and ctx only bounds how long Send waits.
func (s *SMTPSender) Send(ctx context.Context, msg *Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return Classify(err)
	}

	e := s.build(msg)
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))

	done := make(chan error, 1)
	go func() {
		if s.cfg.Secure {
			done <- e.SendWithTLS(addr, s.auth, &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12})
			return
		}
		done <- e.Send(addr, s.auth)
	}()

	select {
	case err := <-done:
		if err != nil {
			return Classify(fmt.Errorf("smtp: %w", err))
		}
		return nil
	case <-ctx.Done():
		return Classify(ctx.Err())
	}
}

func (s *SMTPSender) build(msg *Message) *email.Email {
	e := email.NewEmail()
	e.From = s.from
	if msg.From != "" {
		e.From = msg.From
	}
	e.To = msg.To
	if msg.ReplyTo != "" {
		e.ReplyTo = []string{msg.ReplyTo}
	}
	e.Subject = msg.Subject
	e.HTML = []byte(msg.HTML)
	e.Text = []byte(msg.Text)
	for k, v := range msg.Headers {
		e.Headers.Set(k, v)
	}
	if msg.Tag != "" {
		e.Headers.Set("X-Tag", msg.Tag)
	}
	return e
}
