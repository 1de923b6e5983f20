package ratelimit

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Backend selects the Store implementation.
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendRedis  Backend = "redis"
)

type Config struct {
	MaxRequests int           `env:"RATE_LIMIT_MAX_REQUESTS" envDefault:"5"`
	Window      time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"15m"`
	MaxKeys     int           `env:"RATE_LIMIT_MAX_KEYS" envDefault:"10000"`
	Backend     Backend       `env:"RATE_LIMIT_BACKEND" envDefault:"memory"`
}

// NewStore builds the configured Store. client is only used by the redis
// backend and must be non-nil there.
func NewStore(cfg Config, client redis.UniversalClient) (Store, error) {
	switch cfg.Backend {
	case BackendMemory, "":
		return NewMemoryStore(cfg.MaxKeys, cfg.Window), nil
	case BackendRedis:
		if client == nil {
			return nil, fmt.Errorf("%w: redis backend needs a client", ErrStoreRequired)
		}
		return NewRedisStore(client), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
