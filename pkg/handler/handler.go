package handler

import (
	"errors"
	"net/http"

	"github.com/infinityconsultancy/enquiry/pkg/binder"
)

// HandlerFunc handles a request already bound into R.
type HandlerFunc[R any] func(ctx Context, req R) Response

// Response renders itself to an http.ResponseWriter.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Bind parses a request into v.
type Bind func(r *http.Request, v any) error

// ErrorHandler writes the response for a failed bind or render.
type ErrorHandler func(ctx Context, err error)

type options struct {
	binders      []Bind
	errorHandler ErrorHandler
}

// Option configures Wrap.
type Option func(*options)

// WithBinders appends request binders. All run in order against the same
// value; a binder returning binder.ErrNotApplicable is skipped.
func WithBinders(binders ...Bind) Option {
	return func(o *options) {
		for _, b := range binders {
			if b != nil {
				o.binders = append(o.binders, b)
			}
		}
	}
}

// WithErrorHandler replaces the default error handler, which writes the
// failure envelope without logging.
func WithErrorHandler(h ErrorHandler) Option {
	return func(o *options) {
		if h != nil {
			o.errorHandler = h
		}
	}
}

func writeError(ctx Context, err error) {
	info := classifyError(err)
	_ = Fail(info.StatusCode, info.Message).Render(ctx.ResponseWriter(), ctx.Request())
}

// Wrap adapts h to http.HandlerFunc. The zero R is passed on when no binder
// applies to the request's content type.
func Wrap[R any](h HandlerFunc[R], opts ...Option) http.HandlerFunc {
	o := &options{errorHandler: writeError}
	for _, opt := range opts {
		opt(o)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := NewContext(w, r)

		var req R
		for _, bind := range o.binders {
			err := bind(r, &req)
			if err == nil || errors.Is(err, binder.ErrNotApplicable) {
				continue
			}
			o.errorHandler(ctx, err)
			return
		}

		resp := h(ctx, req)
		if resp == nil {
			o.errorHandler(ctx, ErrNilResponse)
			return
		}
		if err := resp.Render(w, r); err != nil {
			o.errorHandler(ctx, err)
		}
	}
}
