// Package ratelimit implements the per-client fixed-window request gate.
//
// Each client key owns a Record{Count, ResetAt}. The first request, or the
// first after ResetAt has passed, starts a new window with Count 1. Inside a
// window a request is allowed while Count < limit and then increments Count;
// once Count reaches the limit further requests are rejected and the record is
// left untouched, so the counter never exceeds the limit.
//
// The check-and-increment happens inside the Store in one step: MemoryStore
// holds a mutex around it and RedisStore runs a Lua script, so concurrent
// requests from one key cannot both slip through.
//
// MemoryStore is bounded: records live in an expiring LRU sized by MaxKeys
// whose TTL equals the window, so idle keys are dropped and the table cannot
// grow without limit.
//
//	store := ratelimit.NewMemoryStore(cfg.MaxKeys, cfg.Window)
//	limiter, err := ratelimit.NewFixedWindow(store, cfg.MaxRequests, cfg.Window)
//	r.With(ratelimit.Middleware(limiter, ratelimit.ByIP)).Post("/send-email", h)
package ratelimit
