package ratelimit

import (
	"context"
	"time"
)

// FixedWindow allows up to limit requests per key per window.
type FixedWindow struct {
	store  Store
	limit  int
	window time.Duration
	now    func() time.Time
}

// Option configures a FixedWindow.
type Option func(*FixedWindow)

// WithClock replaces time.Now, letting tests move time forward.
func WithClock(now func() time.Time) Option {
	return func(fw *FixedWindow) {
		if now != nil {
			fw.now = now
		}
	}
}

func NewFixedWindow(store Store, limit int, window time.Duration, opts ...Option) (*FixedWindow, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if window <= 0 {
		return nil, ErrInvalidInterval
	}

	fw := &FixedWindow{
		store:  store,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(fw)
	}
	return fw, nil
}

func (fw *FixedWindow) Allow(ctx context.Context, key string) (*Result, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}

	now := fw.now()
	rec, allowed, err := fw.store.Take(ctx, key, fw.limit, fw.window, now)
	if err != nil {
		return nil, err
	}
	return fw.result(rec, allowed, now), nil
}

func (fw *FixedWindow) Status(ctx context.Context, key string) (*Result, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}

	now := fw.now()
	rec, err := fw.store.Get(ctx, key, now)
	if err != nil {
		return nil, err
	}
	if rec.Count == 0 {
		rec.ResetAt = now.Add(fw.window)
	}
	return fw.result(rec, rec.Count < fw.limit, now), nil
}

func (fw *FixedWindow) Reset(ctx context.Context, key string) error {
	if key == "" {
		return ErrKeyRequired
	}
	return fw.store.Delete(ctx, key)
}

// Limit returns the maximum number of requests per window.
func (fw *FixedWindow) Limit() int { return fw.limit }

// Window returns the window length.
func (fw *FixedWindow) Window() time.Duration { return fw.window }

func (fw *FixedWindow) result(rec Record, allowed bool, now time.Time) *Result {
	return &Result{
		Allowed:   allowed,
		Limit:     fw.limit,
		Remaining: max(fw.limit-rec.Count, 0),
		ResetAt:   rec.ResetAt,
		CheckedAt: now,
	}
}
