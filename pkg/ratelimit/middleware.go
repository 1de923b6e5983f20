package ratelimit

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/infinityconsultancy/enquiry/pkg/logger"
)

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*guard)

// WithOnLimitReached replaces the plain-text 429 response. Rate limit headers
// are already set when fn runs.
func WithOnLimitReached(fn func(w http.ResponseWriter, r *http.Request, result *Result)) MiddlewareOption {
	return func(g *guard) {
		if fn != nil {
			g.reject = fn
		}
	}
}

// WithLogger reports store failures and rejections.
func WithLogger(l *slog.Logger) MiddlewareOption {
	return func(g *guard) {
		if l != nil {
			g.log = l
		}
	}
}

type guard struct {
	limiter Limiter
	key     KeyFunc
	reject  func(w http.ResponseWriter, r *http.Request, result *Result)
	log     *slog.Logger
	next    http.Handler
}

func rejectPlain(w http.ResponseWriter, _ *http.Request, _ *Result) {
	http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
}

// Middleware consumes one slot per request before next runs. An empty key
// bypasses the limiter. Store errors fail open: the request proceeds and the
// error is logged.
func Middleware(limiter Limiter, keyFunc KeyFunc, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	if limiter == nil || keyFunc == nil {
		panic("ratelimit: Middleware needs a limiter and a key func")
	}

	proto := guard{
		limiter: limiter,
		key:     keyFunc,
		reject:  rejectPlain,
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&proto)
	}

	return func(next http.Handler) http.Handler {
		g := proto
		g.next = next
		return &g
	}
}

func (g *guard) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := g.key(r)
	if key == "" {
		g.next.ServeHTTP(w, r)
		return
	}

	ctx := r.Context()
	result, err := g.limiter.Allow(ctx, key)
	if err != nil {
		g.log.ErrorContext(ctx, "rate limit store unavailable, request allowed",
			logger.Component("ratelimit"),
			logger.Error(err),
		)
		g.next.ServeHTTP(w, r)
		return
	}

	SetHeaders(w, result)
	if result.Allowed {
		g.next.ServeHTTP(w, r)
		return
	}

	g.log.WarnContext(ctx, "rate limit exceeded",
		logger.Component("ratelimit"),
		logger.RateLimitKey(key),
		slog.Int("limit", result.Limit),
		slog.Time("reset_at", result.ResetAt),
	)
	g.reject(w, r, result)
}

// SetHeaders writes X-RateLimit-Limit, -Remaining and -Reset. Rejections also
// get Retry-After in whole seconds, rounded up and at least 1.
func SetHeaders(w http.ResponseWriter, result *Result) {
	h := w.Header()
	h.Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

	if result.Allowed {
		return
	}
	secs := max(int(math.Ceil(result.RetryAfter().Seconds())), 1)
	h.Set("Retry-After", strconv.Itoa(secs))
}
