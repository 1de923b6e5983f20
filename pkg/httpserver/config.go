package httpserver

import (
	"net"
	"strings"
	"time"
)

type Config struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":5000"`
	Port            string        `env:"PORT"` // Port overrides the port part of Addr, as set by most PaaS hosts.
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"75s"` // must exceed MAIL_SEND_TIMEOUT
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// ListenAddr returns Addr with its port replaced by Port when Port is set.
func (c Config) ListenAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		return c.Addr
	}
	host, _, err := net.SplitHostPort(c.Addr)
	if err != nil {
		host = ""
	}
	return net.JoinHostPort(host, port)
}

// NewFromConfig creates a new Server from the provided Config.
// Only non-zero values from the config are applied.
func NewFromConfig(cfg Config, opts ...Option) *Server {
	configOpts := make([]Option, 0, 5)

	if addr := cfg.ListenAddr(); addr != "" {
		configOpts = append(configOpts, WithAddr(addr))
	}
	if cfg.ReadTimeout > 0 {
		configOpts = append(configOpts, WithReadTimeout(cfg.ReadTimeout))
	}
	if cfg.WriteTimeout > 0 {
		configOpts = append(configOpts, WithWriteTimeout(cfg.WriteTimeout))
	}
	if cfg.IdleTimeout > 0 {
		configOpts = append(configOpts, WithIdleTimeout(cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout > 0 {
		configOpts = append(configOpts, WithShutdownTimeout(cfg.ShutdownTimeout))
	}

	configOpts = append(configOpts, opts...)

	return New(configOpts...)
}
