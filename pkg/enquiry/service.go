package enquiry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/infinityconsultancy/enquiry/pkg/logger"
	"github.com/infinityconsultancy/enquiry/pkg/mailer"
	"github.com/infinityconsultancy/enquiry/pkg/requestid"
)

var (
	// ErrTransportNotConfigured means no mail sender is available.
	ErrTransportNotConfigured = errors.New("mail transport not configured")
	// ErrNoRecipients means MAIL_RECIPIENTS is empty.
	ErrNoRecipients = errors.New("no recipients configured")
)

// Service validates and dispatches enquiries.
type Service struct {
	sender     mailer.Sender
	cfg        Config
	recipients []string
	log        *slog.Logger
	now        func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the outcome logger.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides time.Now for duration measurements.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a Service. sender may be nil when the transport is not
// configured; Submit then fails with ErrTransportNotConfigured.
func NewService(sender mailer.Sender, cfg Config, opts ...ServiceOption) *Service {
	s := &Service{
		sender:     sender,
		cfg:        cfg,
		recipients: cfg.recipients(),
		log:        slog.New(slog.DiscardHandler),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Policy returns the validation policy.
func (s *Service) Policy() Policy { return s.cfg.Policy() }

// Order returns the configured rate limit order.
func (s *Service) Order() Order { return s.cfg.Order() }

// Ready reports configuration problems that make every Submit fail.
func (s *Service) Ready() error {
	if s.sender == nil {
		return ErrTransportNotConfigured
	}
	if len(s.recipients) == 0 {
		return ErrNoRecipients
	}
	return nil
}

// Submit sends one notification for a validated request. Transport failures
// are classified with mailer.Classify.
func (s *Service) Submit(ctx context.Context, r Request) error {
	if err := s.Ready(); err != nil {
		return err
	}

	msg, err := BuildNotification(ctx, r, s.recipients)
	if err != nil {
		return err
	}
	if id := requestid.FromContext(ctx); id != "" {
		msg.Headers = map[string]string{requestid.Header: id}
	}

	start := s.now()
	err = s.dispatch(ctx, msg)
	elapsed := s.now().Sub(start)

	attrs := []slog.Attr{
		logger.Transport(mailer.NameOf(s.sender)),
		logger.Duration(elapsed),
		logger.RequestID(requestid.FromContext(ctx)),
		logger.Component("enquiry"),
	}
	if err != nil {
		s.log.LogAttrs(ctx, slog.LevelError, "enquiry dispatch failed",
			append(attrs, logger.Outcome(outcomeOf(err)), logger.Error(err))...)
		return err
	}
	s.log.LogAttrs(ctx, slog.LevelInfo, "enquiry sent", append(attrs, logger.Outcome("sent"))...)
	return nil
}

// dispatch races the send against the timeout. The send keeps the caller's
// values but not its cancellation, so a client disconnect does not abort
// an accepted enquiry.
func (s *Service) dispatch(ctx context.Context, msg *mailer.Message) error {
	timeout := s.cfg.sendTimeout()
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- fmt.Errorf("%w: sender panic: %v", mailer.ErrSendFailed, p)
			}
		}()
		done <- s.sender.Send(sendCtx, msg)
	}()

	select {
	case err := <-done:
		return mailer.Classify(err)
	case <-sendCtx.Done():
		return fmt.Errorf("%w: no response after %s", mailer.ErrTimeout, timeout)
	}
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, mailer.ErrAuth):
		return "auth_failed"
	case errors.Is(err, mailer.ErrConnection):
		return "connection_failed"
	case errors.Is(err, mailer.ErrTimeout):
		return "timeout"
	default:
		return "failed"
	}
}
