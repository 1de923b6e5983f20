package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/infinityconsultancy/enquiry/pkg/binder"
	"github.com/infinityconsultancy/enquiry/pkg/logger"
	"github.com/infinityconsultancy/enquiry/pkg/requestid"
	"github.com/infinityconsultancy/enquiry/pkg/validator"
)

// ErrorInfo contains classified error information.
type ErrorInfo struct {
	StatusCode int
	Message    string
	LogLevel   slog.Level
}

func classifyError(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: ErrInternalServerError.Code,
		Message:    ErrInternalServerError.Message,
	}

	var httpErr HTTPError
	var validationErr validator.ValidationErrors
	switch {
	case errors.As(err, &httpErr):
		info.StatusCode = httpErr.Code
		info.Message = httpErr.Message
	case errors.As(err, &validationErr) && !validationErr.IsEmpty():
		info.StatusCode = http.StatusBadRequest
		info.Message = validationErr[0].Message
	case errors.Is(err, binder.ErrFailedToParseJSON), errors.Is(err, binder.ErrFailedToParseForm):
		info.StatusCode = ErrBadRequest.Code
		info.Message = ErrBadRequest.Message
	}

	info.LogLevel = slog.LevelError
	if info.StatusCode < http.StatusInternalServerError {
		info.LogLevel = slog.LevelWarn
	}
	return info
}

// NewErrorHandler returns an ErrorHandler that logs the error and writes the
// JSON envelope. Internal error text is logged, never returned to the client.
func NewErrorHandler(log *slog.Logger) ErrorHandler {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		info := classifyError(err)

		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.RequestID(requestid.FromContext(r.Context())),
			logger.Error(err),
			logger.Status(info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		if renderErr := Fail(info.StatusCode, info.Message).Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.Error("failed to render error response",
				logger.Error(renderErr),
				logger.Component("error_handler"),
			)
		}
	}
}
