// Package logger builds *slog.Logger instances with functional options,
// request-scoped attribute injection and optional Sentry forwarding.
//
// New picks a text or JSON handler, attaches static attributes and wraps the
// result in a handler that runs every registered ContextExtractor
// on each record. That is how request ids and client addresses stored in the
// request context end up on every log line without being passed around.
//
//	log := logger.New(
//	    logger.WithEnvironment("production", "enquiry"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "enquiry dispatched",
//	    logger.Transport("smtp"),
//	    logger.Duration(time.Since(start)),
//	)
//
// NewWithSentry does the same but also fans warn and error records out to
// Sentry when a DSN is configured. Without a DSN it behaves exactly like New.
//
// Attribute helpers in attr.go keep key names consistent. Error returns an
// empty attribute for a nil error, so it can be passed unconditionally.
package logger
