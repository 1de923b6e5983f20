package ratelimit

import (
	"context"
	"time"
)

// Record is the per-client window state.
type Record struct {
	Key     string
	Count   int
	ResetAt time.Time
}

// Expired reports whether the window has closed at now.
func (r Record) Expired(now time.Time) bool {
	return now.After(r.ResetAt)
}

// Result contains the outcome of a rate limit check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
	CheckedAt time.Time
}

// RetryAfter returns how long to wait before the next request is allowed.
// Returns 0 if the current request was allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed {
		return 0
	}
	return max(r.ResetAt.Sub(r.CheckedAt), 0)
}

// Limiter is the gate consulted once per request.
type Limiter interface {
	// Allow consumes one slot for key when available.
	Allow(ctx context.Context, key string) (*Result, error)

	// Status reports the current state for key without consuming a slot.
	Status(ctx context.Context, key string) (*Result, error)

	// Reset forgets key.
	Reset(ctx context.Context, key string) error
}

// Store persists window records.
type Store interface {
	// Take performs the atomic check-and-increment and returns the record
	// after the decision together with whether the request was allowed.
	Take(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (Record, bool, error)

	// Get returns the live record for key, or a zero Record when none exists
	// or its window has closed.
	Get(ctx context.Context, key string, now time.Time) (Record, error)

	Delete(ctx context.Context, key string) error
}
