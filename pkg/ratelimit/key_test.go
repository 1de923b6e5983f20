package ratelimit_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/infinityconsultancy/enquiry/pkg/clientip"
	"github.com/infinityconsultancy/enquiry/pkg/ratelimit"
)

func TestByIP(t *testing.T) {
	t.Parallel()

	t.Run("prefers context value", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/send-email", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req = req.WithContext(clientip.WithIP(req.Context(), "198.51.100.7"))
		assert.Equal(t, "198.51.100.7", ratelimit.ByIP(req))
	})

	t.Run("falls back to socket peer ignoring headers", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/send-email", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req.Header.Set("X-Forwarded-For", "6.6.6.6")
		req.Header.Set("CF-Connecting-IP", "7.7.7.7")
		assert.Equal(t, "10.0.0.1", ratelimit.ByIP(req))
	})
}

func TestWithPrefix(t *testing.T) {
	t.Parallel()

	fn := ratelimit.WithPrefix("send-email:", ratelimit.ByIP)
	req := httptest.NewRequest(http.MethodPost, "/send-email", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	assert.Equal(t, "send-email:10.0.0.1", fn(req))

	empty := ratelimit.WithPrefix("x:", func(*http.Request) string { return "" })
	assert.Empty(t, empty(req))
}
