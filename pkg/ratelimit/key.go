package ratelimit

import (
	"net/http"

	"github.com/infinityconsultancy/enquiry/pkg/clientip"
)

// KeyFunc extracts the client key from a request. An empty key skips limiting.
type KeyFunc func(*http.Request) string

// ByIP keys requests by the address clientip.Middleware stored in the context,
// falling back to the socket peer when the middleware did not run.
func ByIP(r *http.Request) string {
	if ip := clientip.FromContext(r.Context()); ip != "" {
		return ip
	}
	return clientip.RemoteIP(r)
}

// WithPrefix namespaces keys from fn, so separate routes keep separate budgets.
func WithPrefix(prefix string, fn KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		key := fn(r)
		if key == "" {
			return ""
		}
		return prefix + key
	}
}
