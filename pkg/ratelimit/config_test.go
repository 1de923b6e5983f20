package ratelimit_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infinityconsultancy/enquiry/pkg/ratelimit"
)

func TestNewStore(t *testing.T) {
	t.Parallel()

	store, err := ratelimit.NewStore(ratelimit.Config{Backend: ratelimit.BackendMemory, MaxKeys: 10, Window: time.Minute}, nil)
	require.NoError(t, err)
	assert.IsType(t, &ratelimit.MemoryStore{}, store)

	_, err = ratelimit.NewStore(ratelimit.Config{Backend: ratelimit.BackendRedis}, nil)
	assert.ErrorIs(t, err, ratelimit.ErrStoreRequired)

	_, err = ratelimit.NewStore(ratelimit.Config{Backend: "memcached"}, nil)
	assert.ErrorIs(t, err, ratelimit.ErrUnknownBackend)
}
