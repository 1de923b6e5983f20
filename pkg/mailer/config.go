package mailer

import (
	"fmt"
	"strings"
)

// Transport names a mail transport.
type Transport string

const (
	TransportSMTP     Transport = "smtp"
	TransportResend   Transport = "resend"
	TransportPostmark Transport = "postmark"
	TransportDev      Transport = "dev"
)

// Config selects and configures the mail transport.
type Config struct {
	Transport Transport `env:"MAIL_TRANSPORT" envDefault:"smtp"`
	From      string    `env:"MAIL_FROM"`
	FromName  string    `env:"MAIL_FROM_NAME" envDefault:"Website Enquiry"`

	SMTP SMTPConfig

	ResendAPIKey string `env:"RESEND_API_KEY"`

	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`

	DevDir string `env:"MAIL_DEV_DIR" envDefault:"./tmp/emails"`
}

// Sender returns the formatted default From address. For SMTP without
// MAIL_FROM the SMTP user is used.
func (c Config) Sender() string {
	from := c.From
	if from == "" && c.Transport == TransportSMTP {
		from = c.SMTP.Username
	}
	if from == "" {
		return ""
	}
	return Address(c.FromName, from)
}

// New builds the sender selected by cfg.Transport. Missing credentials yield
// an error wrapping ErrNotConfigured.
func New(cfg Config) (Sender, error) {
	var (
		s   Sender
		err error
	)
	switch Transport(strings.ToLower(string(cfg.Transport))) {
	case TransportSMTP, "":
		s, err = orNil(NewSMTPSender(cfg.SMTP, cfg.Sender()))
	case TransportResend:
		s, err = orNil(NewResendSender(cfg.ResendAPIKey, cfg.Sender()))
	case TransportPostmark:
		s, err = orNil(NewPostmarkSender(cfg.PostmarkServerToken, cfg.PostmarkAccountToken, cfg.Sender()))
	case TransportDev:
		s = NewDevSender(cfg.DevDir)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownTransport, cfg.Transport)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// orNil keeps a typed nil pointer out of the Sender interface.
func orNil[T Sender](s T, err error) (Sender, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}

// NameOf reports the transport name of s, or "unknown".
func NameOf(s Sender) string {
	if n, ok := s.(interface{ Name() string }); ok {
		return n.Name()
	}
	return "unknown"
}
