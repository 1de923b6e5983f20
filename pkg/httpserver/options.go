package httpserver

import (
	"fmt"
	"log/slog"
	"time"
)

// Option configures the Server. Invalid values panic at construction.
type Option func(*config)

func WithAddr(addr string) Option {
	if addr == "" {
		panic("httpserver: empty listen address")
	}
	return func(c *config) { c.addr = addr }
}

// WithReadTimeout bounds reading the whole request including the body.
func WithReadTimeout(d time.Duration) Option {
	mustPositive("read timeout", d)
	return func(c *config) { c.readTimeout = d }
}

func WithReadHeaderTimeout(d time.Duration) Option {
	mustPositive("read header timeout", d)
	return func(c *config) { c.readHeaderTimeout = d }
}

// WithWriteTimeout bounds the handler plus response write. Keep it above the
// mail send timeout so a slow transport still gets its answer out.
func WithWriteTimeout(d time.Duration) Option {
	mustPositive("write timeout", d)
	return func(c *config) { c.writeTimeout = d }
}

func WithIdleTimeout(d time.Duration) Option {
	mustPositive("idle timeout", d)
	return func(c *config) { c.idleTimeout = d }
}

func WithShutdownTimeout(d time.Duration) Option {
	mustPositive("shutdown timeout", d)
	return func(c *config) { c.shutdownTimeout = d }
}

// WithLogger sets the lifecycle logger. Nil keeps logging disabled.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

func mustPositive(name string, d time.Duration) {
	if d <= 0 {
		panic(fmt.Sprintf("httpserver: %s must be positive, got %s", name, d))
	}
}
