package logger

import (
	"context"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"APP_ENV" envDefault:"development"`
	Release     string `env:"APP_VERSION"`
}

// NewWithSentry creates a logger configured by opts that also forwards records
// to Sentry: errors become issues, warnings and errors are stored as logs.
// With an empty DSN, or when the SDK fails to start, it returns the plain logger.
// The returned flush func drains buffered events and is safe to call either way.
func NewWithSentry(cfg SentryConfig, opts ...Option) (*slog.Logger, func(time.Duration)) {
	c := defaultConfig()
	for _, opt := range opts {
		opt(c)
	}
	base := c.baseHandler()
	noop := func(time.Duration) {}

	if cfg.DSN == "" {
		return c.build(base), noop
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     cfg.Release,
		EnableLogs:  true,
	}); err != nil {
		log := c.build(base)
		log.Error("failed to initialize sentry", Error(err))
		return log, noop
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
	}.NewSentryHandler(context.Background())

	flush := func(timeout time.Duration) { sentry.Flush(timeout) }
	return c.build(newMultiHandler(base, sentryHandler)), flush
}
