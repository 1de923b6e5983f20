package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultMaxKeys caps the number of tracked clients in MemoryStore.
const DefaultMaxKeys = 10_000

// MemoryStore keeps records in process memory, bounded by an expiring LRU.
// When the cache is full the least recently seen client is evicted, which
// hands that client a fresh window on its next request.
type MemoryStore struct {
	mu    sync.Mutex
	cache *expirable.LRU[string, Record]
}

// NewMemoryStore creates a store holding at most maxKeys records, each
// dropped ttl after its last update. ttl should equal the limiter window.
func NewMemoryStore(maxKeys int, ttl time.Duration) *MemoryStore {
	if maxKeys <= 0 {
		maxKeys = DefaultMaxKeys
	}
	return &MemoryStore{
		cache: expirable.NewLRU[string, Record](maxKeys, nil, ttl),
	}
}

func (s *MemoryStore) Take(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.cache.Get(key)
	if !ok || rec.Expired(now) {
		rec = Record{Key: key, Count: 1, ResetAt: now.Add(window)}
		s.cache.Add(key, rec)
		return rec, true, nil
	}

	if rec.Count >= limit {
		return rec, false, nil
	}

	rec.Count++
	s.cache.Add(key, rec)
	return rec, true, nil
}

func (s *MemoryStore) Get(ctx context.Context, key string, now time.Time) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.cache.Peek(key)
	if !ok || rec.Expired(now) {
		return Record{Key: key}, nil
	}
	return rec, nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Remove(key)
	return nil
}

// Len returns the number of tracked keys.
func (s *MemoryStore) Len() int {
	return s.cache.Len()
}

// Close drops every record.
func (s *MemoryStore) Close() error {
	s.cache.Purge()
	return nil
}
