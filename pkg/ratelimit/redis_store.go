package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// takeScript mirrors MemoryStore.Take. Window reset is left to key expiry.
// Returns {allowed, count, pttl_ms}.
var takeScript = redis.NewScript(`
local current = redis.call('GET', KEYS[1])
if not current then
	redis.call('SET', KEYS[1], 1, 'PX', ARGV[2])
	return {1, 1, tonumber(ARGV[2])}
end
local count = tonumber(current)
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[2])
	ttl = tonumber(ARGV[2])
end
if count >= tonumber(ARGV[1]) then
	return {0, count, ttl}
end
count = redis.call('INCR', KEYS[1])
return {1, count, ttl}
`)

// RedisStore shares window records between service replicas.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix namespaces stored keys. Default "ratelimit:".
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) { s.prefix = prefix }
}

func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{client: client, prefix: "ratelimit:"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) Take(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (Record, bool, error) {
	res, err := takeScript.Run(ctx, s.client, []string{s.prefix + key}, limit, window.Milliseconds()).Int64Slice()
	if err != nil {
		return Record{}, false, errors.Join(ErrStoreFailure, err)
	}
	if len(res) != 3 {
		return Record{}, false, fmt.Errorf("%w: unexpected script reply %v", ErrStoreFailure, res)
	}

	rec := Record{
		Key:     key,
		Count:   int(res[1]),
		ResetAt: now.Add(time.Duration(res[2]) * time.Millisecond),
	}
	return rec, res[0] == 1, nil
}

func (s *RedisStore) Get(ctx context.Context, key string, now time.Time) (Record, error) {
	pipe := s.client.Pipeline()
	getCmd := pipe.Get(ctx, s.prefix+key)
	ttlCmd := pipe.PTTL(ctx, s.prefix+key)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return Record{}, errors.Join(ErrStoreFailure, err)
	}

	count, err := getCmd.Int()
	if errors.Is(err, redis.Nil) {
		return Record{Key: key}, nil
	}
	if err != nil {
		return Record{}, errors.Join(ErrStoreFailure, err)
	}

	return Record{
		Key:     key,
		Count:   count,
		ResetAt: now.Add(max(ttlCmd.Val(), 0)),
	}, nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}
