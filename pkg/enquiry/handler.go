package enquiry

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/infinityconsultancy/enquiry/pkg/binder"
	"github.com/infinityconsultancy/enquiry/pkg/handler"
	"github.com/infinityconsultancy/enquiry/pkg/logger"
	"github.com/infinityconsultancy/enquiry/pkg/mailer"
	"github.com/infinityconsultancy/enquiry/pkg/ratelimit"
	"github.com/infinityconsultancy/enquiry/pkg/validator"
)

// Response messages.
const (
	MsgSent           = "Email sent successfully!"
	MsgConfigError    = "Server configuration error."
	MsgNoRecipients   = "No recipients configured."
	MsgAuthFailed     = "Email service authentication failed. Please try again later."
	MsgConnFailed     = "Unable to connect to the email service. Please try again later."
	MsgTimeout        = "Email sending timed out. Please try again."
	MsgSendFailed     = "Failed to send email. Please try again later."
	msgTooManyRequest = "Too many requests. Please try again after %d %s."
)

// DefaultRateLimitWindow is used for the 429 message when the limiter does
// not expose its window.
const DefaultRateLimitWindow = 15 * time.Minute

// Handler serves POST /send-email.
type Handler struct {
	svc     *Service
	limiter ratelimit.Limiter
	keyFunc ratelimit.KeyFunc
	log     *slog.Logger
	http    http.Handler
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// RateLimitKeyPrefix namespaces this route's limiter keys in a shared store.
const RateLimitKeyPrefix = "send-email:"

// WithKeyFunc sets how clients are keyed for rate limiting. The default is
// ratelimit.ByIP under RateLimitKeyPrefix.
func WithKeyFunc(fn ratelimit.KeyFunc) HandlerOption {
	return func(h *Handler) {
		if fn != nil {
			h.keyFunc = fn
		}
	}
}

// WithHandlerLogger sets the request logger.
func WithHandlerLogger(l *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

// NewHandler creates the HTTP handler. A nil limiter disables rate limiting.
func NewHandler(svc *Service, limiter ratelimit.Limiter, opts ...HandlerOption) *Handler {
	h := &Handler{
		svc:     svc,
		limiter: limiter,
		keyFunc: ratelimit.WithPrefix(RateLimitKeyPrefix, ratelimit.ByIP),
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.http = h.build()
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.http.ServeHTTP(w, r)
}

// build places the rate limit gate according to the configured order.
func (h *Handler) build() http.Handler {
	submit := handler.Wrap(h.submit,
		handler.WithBinders(binder.JSON(), binder.Form()),
		handler.WithErrorHandler(handler.NewErrorHandler(h.log)),
	)

	if h.limiter == nil || h.svc.Order() == OrderAfterValidation {
		return submit
	}

	return ratelimit.Middleware(h.limiter, h.keyFunc,
		ratelimit.WithLogger(h.log),
		ratelimit.WithOnLimitReached(func(w http.ResponseWriter, r *http.Request, _ *ratelimit.Result) {
			_ = handler.Fail(http.StatusTooManyRequests, h.tooManyRequestsMessage()).Render(w, r)
		}),
	)(submit)
}

func (h *Handler) submit(ctx handler.Context, req Request) handler.Response {
	req = req.Normalize()

	if err := CheckRequired(req); err != nil {
		h.log.WarnContext(ctx, "enquiry rejected", logger.Error(err), logger.Component("enquiry"))
		return handler.Fail(http.StatusBadRequest, MsgMissingFields)
	}

	if err := Validate(req, h.svc.Policy()); err != nil {
		h.log.WarnContext(ctx, "enquiry rejected", logger.Error(err), logger.Component("enquiry"))
		return handler.Fail(http.StatusBadRequest, validator.FirstMessage(err))
	}

	if h.limiter != nil && h.svc.Order() == OrderAfterValidation {
		if resp := h.checkLimit(ctx); resp != nil {
			return resp
		}
	}

	if err := h.svc.Submit(ctx, req); err != nil {
		status, msg := responseFor(err)
		return handler.Fail(status, msg)
	}
	return handler.Success(MsgSent)
}

func (h *Handler) checkLimit(ctx handler.Context) handler.Response {
	key := h.keyFunc(ctx.Request())
	if key == "" {
		return nil
	}
	result, err := h.limiter.Allow(ctx, key)
	if err != nil {
		h.log.ErrorContext(ctx, "rate limit check failed, allowing request",
			logger.Error(err), logger.Component("enquiry"))
		return nil
	}
	ratelimit.SetHeaders(ctx.ResponseWriter(), result)
	if !result.Allowed {
		h.log.WarnContext(ctx, "rate limit exceeded",
			logger.RateLimitKey(key), logger.Component("enquiry"))
		return handler.Fail(http.StatusTooManyRequests, h.tooManyRequestsMessage())
	}
	return nil
}

func (h *Handler) tooManyRequestsMessage() string {
	window := DefaultRateLimitWindow
	if w, ok := h.limiter.(interface{ Window() time.Duration }); ok && w.Window() > 0 {
		window = w.Window()
	}
	return TooManyRequestsMessage(window)
}

// TooManyRequestsMessage phrases the 429 message for a rate window,
// rounded up to whole minutes.
func TooManyRequestsMessage(window time.Duration) string {
	minutes := max(int(math.Ceil(window.Minutes())), 1)
	unit := "minutes"
	if minutes == 1 {
		unit = "minute"
	}
	return fmt.Sprintf(msgTooManyRequest, minutes, unit)
}

// responseFor maps a Submit error to a status and a message that never
// includes transport details.
func responseFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrTransportNotConfigured):
		return http.StatusInternalServerError, MsgConfigError
	case errors.Is(err, ErrNoRecipients):
		return http.StatusInternalServerError, MsgNoRecipients
	case errors.Is(err, mailer.ErrAuth):
		return http.StatusInternalServerError, MsgAuthFailed
	case errors.Is(err, mailer.ErrConnection):
		return http.StatusInternalServerError, MsgConnFailed
	case errors.Is(err, mailer.ErrTimeout):
		return http.StatusInternalServerError, MsgTimeout
	default:
		return http.StatusInternalServerError, MsgSendFailed
	}
}
