package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"

	// timestampLayout matches the millisecond ISO-8601 form browsers produce.
	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

// CheckFunc reports whether a dependency is ready.
type CheckFunc func(ctx context.Context) error

// Checks maps a dependency name to its readiness check.
type Checks map[string]CheckFunc

// HealthResponse is the GET /health body.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

type healthConfig struct {
	now     func() time.Time
	timeout time.Duration
	logger  *slog.Logger
}

// HealthOption configures HealthHandler.
type HealthOption func(*healthConfig)

// WithClock replaces time.Now for the reported timestamp.
func WithClock(now func() time.Time) HealthOption {
	return func(c *healthConfig) {
		if now != nil {
			c.now = now
		}
	}
}

// WithCheckTimeout bounds the total time spent running checks.
func WithCheckTimeout(d time.Duration) HealthOption {
	return func(c *healthConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithHealthLogger(l *slog.Logger) HealthOption {
	return func(c *healthConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// HealthHandler returns 200 {"status":"healthy","timestamp":...} while every
// check passes. A failing check turns the status into "unhealthy" with 503.
// With no checks it only reports liveness.
func HealthHandler(checks Checks, opts ...HealthOption) http.HandlerFunc {
	cfg := &healthConfig{
		now:     time.Now,
		timeout: 3 * time.Second,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{Status: StatusHealthy}

		if len(checks) > 0 {
			results := runChecks(r.Context(), checks, cfg)
			resp.Checks = make(map[string]string, len(results))
			for _, name := range sortedKeys(results) {
				if err := results[name]; err != nil {
					resp.Status = StatusUnhealthy
					resp.Checks[name] = StatusUnhealthy
					cfg.logger.WarnContext(r.Context(), "health check failed",
						slog.String("check", name),
						slog.String("error", err.Error()),
					)
					continue
				}
				resp.Checks[name] = StatusHealthy
			}
		}
		resp.Timestamp = cfg.now().UTC().Format(timestampLayout)

		status := http.StatusOK
		if resp.Status == StatusUnhealthy {
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func runChecks(ctx context.Context, checks Checks, cfg *healthConfig) map[string]error {
	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]error, len(checks))
	)

	for name, check := range checks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := check(ctx)
			mu.Lock()
			results[name] = err
			mu.Unlock()
		}()
	}
	wg.Wait()

	return results
}

func sortedKeys(m map[string]error) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
