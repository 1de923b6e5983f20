// Package cors implements an origin allow-list CORS middleware.
//
// Origins are compared after trimming whitespace and a trailing slash, so
// "https://example.com/" in configuration matches an "https://example.com"
// Origin header. Requests without an Origin header pass through untouched.
//
// In strict mode a disallowed origin gets no CORS headers and its preflight is
// answered with 403. Otherwise the mismatch is logged and the origin is
// allowed anyway.
package cors

import (
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/infinityconsultancy/enquiry/pkg/logger"
)

// DefaultMaxAge is the default preflight cache duration.
const DefaultMaxAge = 12 * time.Hour

// Config configures the CORS middleware.
type Config struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:5173,http://localhost:3000" envSeparator:","`
	// FrontendURL is appended to AllowedOrigins when set.
	FrontendURL string `env:"FRONTEND_URL"`
	Strict      bool   `env:"CORS_STRICT" envDefault:"true"`
}

// Origins returns the normalised allow-list including FrontendURL.
func (c Config) Origins() []string {
	out := make([]string, 0, len(c.AllowedOrigins)+1)
	for _, o := range append(slices.Clone(c.AllowedOrigins), c.FrontendURL) {
		if n := Normalize(o); n != "" && !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	return out
}

type options struct {
	origins       []string
	strict        bool
	methods       []string
	headers       []string
	exposeHeaders []string
	credentials   bool
	maxAge        time.Duration
	log           *slog.Logger
}

// Option configures the middleware.
type Option func(*options)

// WithAllowOrigins sets the allowed origins.
func WithAllowOrigins(origins ...string) Option {
	return func(o *options) {
		o.origins = nil
		for _, origin := range origins {
			if n := Normalize(origin); n != "" {
				o.origins = append(o.origins, n)
			}
		}
	}
}

// WithStrict controls whether disallowed origins are rejected.
func WithStrict(strict bool) Option {
	return func(o *options) { o.strict = strict }
}

// WithAllowMethods sets the allowed HTTP methods.
func WithAllowMethods(methods ...string) Option {
	return func(o *options) { o.methods = methods }
}

// WithAllowHeaders sets the allowed request headers.
func WithAllowHeaders(headers ...string) Option {
	return func(o *options) { o.headers = headers }
}

// WithExposeHeaders sets the headers exposed to the client.
func WithExposeHeaders(headers ...string) Option {
	return func(o *options) { o.exposeHeaders = headers }
}

// WithAllowCredentials toggles Access-Control-Allow-Credentials.
func WithAllowCredentials(allow bool) Option {
	return func(o *options) { o.credentials = allow }
}

// WithMaxAge sets the preflight cache duration.
func WithMaxAge(d time.Duration) Option {
	return func(o *options) { o.maxAge = d }
}

// WithLogger sets the logger used to report disallowed origins.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// FromConfig converts cfg into options.
func FromConfig(cfg Config) []Option {
	return []Option{WithAllowOrigins(cfg.Origins()...), WithStrict(cfg.Strict)}
}

// Normalize trims whitespace and a single trailing slash.
func Normalize(origin string) string {
	return strings.TrimSuffix(strings.TrimSpace(origin), "/")
}

// Middleware returns the CORS middleware.
func Middleware(opts ...Option) func(http.Handler) http.Handler {
	o := &options{
		strict:        true,
		methods:       []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		headers:       []string{"Content-Type", "Authorization"},
		exposeHeaders: []string{"Content-Type"},
		credentials:   true,
		maxAge:        DefaultMaxAge,
		log:           slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}

	allowMethods := strings.Join(o.methods, ", ")
	allowHeaders := strings.Join(o.headers, ", ")
	exposeHeaders := strings.Join(o.exposeHeaders, ", ")
	maxAge := strconv.Itoa(int(o.maxAge.Seconds()))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			preflight := r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
			h := w.Header()
			h.Add("Vary", "Origin")

			if !slices.Contains(o.origins, Normalize(origin)) {
				if o.strict {
					o.log.WarnContext(r.Context(), "cors origin rejected",
						slog.String("origin", origin),
						logger.Component("cors"),
					)
					if preflight {
						w.WriteHeader(http.StatusForbidden)
						return
					}
					next.ServeHTTP(w, r)
					return
				}
				o.log.InfoContext(r.Context(), "cors origin not in allow-list, allowing",
					slog.String("origin", origin),
					logger.Component("cors"),
				)
			}

			h.Set("Access-Control-Allow-Origin", origin)
			if o.credentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			if exposeHeaders != "" {
				h.Set("Access-Control-Expose-Headers", exposeHeaders)
			}

			if preflight {
				h.Add("Vary", "Access-Control-Request-Method")
				h.Add("Vary", "Access-Control-Request-Headers")
				h.Set("Access-Control-Allow-Methods", allowMethods)
				h.Set("Access-Control-Allow-Headers", allowHeaders)
				if o.maxAge > 0 {
					h.Set("Access-Control-Max-Age", maxAge)
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
