// Package httpserver runs the HTTP listener with graceful shutdown and holds
// the transport-level middleware shared by every route.
//
// Server wraps http.Server. Run blocks until the context is cancelled or an
// interrupt/TERM signal arrives, then shuts down with a bounded deadline.
// Construction goes through New or NewFromConfig with Option helpers such as
// WithAddr and WithLogger; invalid option values panic at startup.
//
// Middleware:
//
//   - SecurityHeaders sets the fixed hardening headers on every response.
//   - Recoverer turns panics into a 500 JSON envelope.
//   - RequestLogger writes one access log line per request.
//
// HealthHandler serves GET /health with {"status":"healthy","timestamp":...}
// and reports 503 "unhealthy" when a readiness check fails.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server stopped", logger.Error(err))
//	}
package httpserver
