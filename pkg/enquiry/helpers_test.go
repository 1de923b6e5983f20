package enquiry_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/infinityconsultancy/enquiry/pkg/enquiry"
	"github.com/infinityconsultancy/enquiry/pkg/mailer"
)

func validRequest() enquiry.Request {
	return enquiry.Request{
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane@example.com",
		Phone:       "9876543210",
		UserMessage: "I would like a quote.",
	}
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, msg *mailer.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// recordingSender keeps every message it was asked to send.
type recordingSender struct {
	mu   sync.Mutex
	msgs []*mailer.Message
	err  error
}

func (s *recordingSender) Send(_ context.Context, msg *mailer.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msg)
	return s.err
}

func (s *recordingSender) Name() string { return "recording" }

func (s *recordingSender) sent() []*mailer.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*mailer.Message(nil), s.msgs...)
}

// hangingSender blocks until released or the test ends, ignoring ctx.
type hangingSender struct {
	release chan struct{}
}

func (s *hangingSender) Send(context.Context, *mailer.Message) error {
	<-s.release
	return nil
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
