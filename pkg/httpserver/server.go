package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/infinityconsultancy/enquiry/pkg/logger"
)

type config struct {
	addr              string
	readTimeout       time.Duration
	readHeaderTimeout time.Duration
	writeTimeout      time.Duration
	idleTimeout       time.Duration
	shutdownTimeout   time.Duration
	logger            *slog.Logger
}

func defaultConfig() *config {
	return &config{
		addr:              ":5000",
		readHeaderTimeout: 5 * time.Second,
		shutdownTimeout:   10 * time.Second,
	}
}

// Server serves one handler until its context ends or the process receives
// SIGINT/SIGTERM, then drains in-flight requests.
type Server struct {
	cfg *config

	mu    sync.Mutex
	srv   *http.Server
	bound net.Addr
	ready chan struct{}

	stopOnce sync.Once
	stopErr  error
}

// New returns a configured Server.
func New(opts ...Option) *Server {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}
	return &Server{cfg: cfg, ready: make(chan struct{})}
}

// Run listens on the configured address and serves handler. See Serve.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	ln, err := net.Listen("tcp", s.cfg.addr)
	if err != nil {
		return errors.Join(ErrStart, err)
	}
	return s.Serve(ctx, ln, handler)
}

// Serve serves handler on ln and blocks until shutdown. A Server serves once;
// a second call returns ErrStart.
func (s *Server) Serve(ctx context.Context, ln net.Listener, handler http.Handler) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		_ = ln.Close()
		return errors.Join(ErrStart, ErrAlreadyRunning)
	}
	s.srv = &http.Server{
		Handler:           handler,
		ReadTimeout:       s.cfg.readTimeout,
		ReadHeaderTimeout: s.cfg.readHeaderTimeout,
		WriteTimeout:      s.cfg.writeTimeout,
		IdleTimeout:       s.cfg.idleTimeout,
		ErrorLog:          slog.NewLogLogger(s.cfg.logger.Handler(), slog.LevelWarn),
	}
	s.bound = ln.Addr()
	srv := s.srv
	s.mu.Unlock()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	s.cfg.logger.Info("http server listening", slog.String("addr", ln.Addr().String()))
	close(s.ready)

	var err error
	select {
	case <-ctx.Done():
		s.cfg.logger.Info("http server shutting down", slog.String("cause", context.Cause(ctx).Error()))
		err = s.Shutdown(context.WithoutCancel(ctx))
		if serveErr := <-errCh; !errors.Is(serveErr, http.ErrServerClosed) {
			err = errors.Join(err, serveErr)
		}
	case err = <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			s.cfg.logger.Error("http server failed", logger.Error(err))
			return errors.Join(ErrStart, err)
		}
		err = s.Shutdown(context.WithoutCancel(ctx))
	}
	return err
}

// Ready is closed once the listener accepts connections.
func (s *Server) Ready() <-chan struct{} { return s.ready }

// Addr returns the bound listener address, or the configured one before Serve.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bound != nil {
		return s.bound.String()
	}
	return s.cfg.addr
}

// Shutdown drains the server within the shutdown timeout. Repeated calls
// return the first result.
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		srv := s.srv
		s.mu.Unlock()
		if srv == nil {
			return
		}

		ctx, cancel := context.WithTimeout(ctx, s.cfg.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			s.stopErr = errors.Join(ErrShutdown, err)
			s.cfg.logger.Warn("http server shutdown incomplete", logger.Error(err))
			return
		}
		s.cfg.logger.Info("http server stopped")
	})
	return s.stopErr
}
