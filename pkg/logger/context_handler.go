package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor pulls one attribute out of a context. ok is false when the
// context carries nothing to log.
type ContextExtractor func(ctx context.Context) (attr slog.Attr, ok bool)

// contextHandler appends extractor output to every record at Handle time, so
// values stored in the request context land on each line.
type contextHandler struct {
	slog.Handler
	extractors []ContextExtractor
}

func withContext(next slog.Handler, extractors []ContextExtractor) slog.Handler {
	if len(extractors) == 0 {
		return next
	}
	return contextHandler{Handler: next, extractors: extractors}
}

func (h contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	for _, extract := range h.extractors {
		if attr, ok := extract(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return h.Handler.Handle(ctx, rec)
}

func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{Handler: h.Handler.WithAttrs(attrs), extractors: h.extractors}
}

func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{Handler: h.Handler.WithGroup(name), extractors: h.extractors}
}
