package enquiry

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidConfig reports an unusable configuration value.
var ErrInvalidConfig = errors.New("invalid enquiry configuration")

// DefaultSendTimeout bounds a single dispatch.
const DefaultSendTimeout = 30 * time.Second

// Order places the rate limit gate relative to field validation.
type Order string

const (
	// OrderBeforeValidation counts every request, valid or not.
	OrderBeforeValidation Order = "before_validation"
	// OrderAfterValidation counts only requests that pass validation.
	OrderAfterValidation Order = "after_validation"
)

// Config is built once at startup and read-only afterwards.
type Config struct {
	Recipients     []string      `env:"MAIL_RECIPIENTS" envSeparator:","`
	SendTimeout    time.Duration `env:"MAIL_SEND_TIMEOUT" envDefault:"30s"`
	EmailPolicy    string        `env:"EMAIL_POLICY" envDefault:"any"`
	MessageMinLen  int           `env:"MESSAGE_MIN_LENGTH" envDefault:"1"`
	MessageMaxLen  int           `env:"MESSAGE_MAX_LENGTH" envDefault:"5000"`
	RateLimitOrder Order         `env:"RATE_LIMIT_ORDER" envDefault:"before_validation"`
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	if _, err := ParseEmailPolicy(c.EmailPolicy); err != nil {
		return err
	}
	switch c.RateLimitOrder {
	case "", OrderBeforeValidation, OrderAfterValidation:
	default:
		return fmt.Errorf("%w: unknown rate limit order %q", ErrInvalidConfig, c.RateLimitOrder)
	}
	if c.MessageMaxLen > 0 && c.MessageMaxLen < c.MessageMinLen {
		return fmt.Errorf("%w: message max length %d below min length %d", ErrInvalidConfig, c.MessageMaxLen, c.MessageMinLen)
	}
	if c.SendTimeout < 0 {
		return fmt.Errorf("%w: negative send timeout", ErrInvalidConfig)
	}
	return nil
}

// Policy returns the validation policy. Invalid values fall back to defaults.
func (c Config) Policy() Policy {
	p, err := ParseEmailPolicy(c.EmailPolicy)
	if err != nil {
		p = EmailPolicyAny
	}
	return Policy{Email: p, MessageMinLen: c.MessageMinLen, MessageMaxLen: c.MessageMaxLen}
}

// Order returns the rate limit order, defaulting to OrderBeforeValidation.
func (c Config) Order() Order {
	if c.RateLimitOrder == OrderAfterValidation {
		return OrderAfterValidation
	}
	return OrderBeforeValidation
}

func (c Config) recipients() []string {
	out := make([]string, 0, len(c.Recipients))
	for _, r := range c.Recipients {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

func (c Config) sendTimeout() time.Duration {
	if c.SendTimeout <= 0 {
		return DefaultSendTimeout
	}
	return c.SendTimeout
}
