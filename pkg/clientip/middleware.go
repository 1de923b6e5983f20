package clientip

import "net/http"

// Middleware resolves the client address once and stores it in the request context.
func Middleware(res *Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithIP(r.Context(), res.IP(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
