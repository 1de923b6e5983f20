package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/infinityconsultancy/enquiry/pkg/clientip"
	"github.com/infinityconsultancy/enquiry/pkg/cors"
	"github.com/infinityconsultancy/enquiry/pkg/handler"
	"github.com/infinityconsultancy/enquiry/pkg/httpserver"
	"github.com/infinityconsultancy/enquiry/pkg/requestid"
)

type routerDeps struct {
	log      *slog.Logger
	enquiry  http.Handler
	resolver *clientip.Resolver
	cors     []cors.Option
	checks   httpserver.Checks
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		requestid.Middleware,
		clientip.Middleware(d.resolver),
		httpserver.RequestLogger(d.log),
		httpserver.Recoverer(d.log),
		httpserver.SecurityHeaders,
		cors.Middleware(d.cors...),
	)

	r.NotFound(envelope(http.StatusNotFound, "Not Found"))
	r.MethodNotAllowed(envelope(http.StatusMethodNotAllowed, "Method Not Allowed"))

	r.Get("/health", httpserver.HealthHandler(d.checks, httpserver.WithHealthLogger(d.log)))
	r.Method(http.MethodPost, "/send-email", d.enquiry)

	return r
}

func envelope(status int, msg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = handler.Fail(status, msg).Render(w, r)
	}
}
