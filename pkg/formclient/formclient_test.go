package formclient_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infinityconsultancy/enquiry/pkg/enquiry"
	"github.com/infinityconsultancy/enquiry/pkg/formclient"
	"github.com/infinityconsultancy/enquiry/pkg/mailer"
	"github.com/infinityconsultancy/enquiry/pkg/ratelimit"
	"github.com/infinityconsultancy/enquiry/pkg/validator"
)

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func fill(t *testing.T, c *formclient.Controller) {
	t.Helper()
	for field, value := range map[string]string{
		"firstName":   "Jane",
		"lastName":    "Doe",
		"email":       "jane@example.com",
		"phone":       "9876543210",
		"userMessage": "Please call me back.",
	} {
		require.NoError(t, c.Set(field, value))
	}
}

func newController(t *testing.T, baseURL string, opts ...formclient.Option) *formclient.Controller {
	t.Helper()
	c, err := formclient.New(formclient.Config{BaseURL: baseURL, Timeout: 5 * time.Second}, opts...)
	require.NoError(t, err)
	return c
}

// stubServer answers every request with status and body and counts calls.
func stubServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := formclient.New(formclient.Config{EmailPolicy: "yahoo"})
	assert.ErrorIs(t, err, enquiry.ErrInvalidConfig)

	c, err := formclient.New(formclient.Config{BaseURL: "http://example.com/"})
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestNew_MessageLengthFromConfig(t *testing.T) {
	t.Parallel()

	c, err := formclient.New(formclient.Config{
		BaseURL:       "http://example.com",
		MessageMinLen: 30,
		MessageMaxLen: 200,
	})
	require.NoError(t, err)
	fill(t, c)

	err = c.Validate()
	require.Error(t, err)
	assert.Equal(t, "Message must be at least 30 characters long.", validator.FirstMessage(err))

	outcome := c.Submit(context.Background())
	assert.Equal(t, formclient.StatusInvalid, outcome.Status)
	assert.Equal(t, "Message must be at least 30 characters long.", outcome.Message)

	require.NoError(t, c.Set("userMessage", strings.Repeat("a", 201)))
	assert.Equal(t, "Message must be at most 200 characters long.", validator.FirstMessage(c.Validate()))

	require.NoError(t, c.Set("userMessage", "Please call me back about the quote."))
	assert.NoError(t, c.Validate())
}

func TestController_Set(t *testing.T) {
	t.Parallel()

	c := newController(t, "http://example.com")
	fill(t, c)
	assert.Equal(t, "Jane", c.Form().FirstName)
	assert.Equal(t, "Please call me back.", c.Form().UserMessage)

	err := c.Set("company", "Acme")
	assert.ErrorIs(t, err, formclient.ErrUnknownField)

	c.Reset()
	assert.Equal(t, enquiry.Request{}, c.Form())
}

func TestController_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		field string
		value string
		want  string
	}{
		{"missing first name", "firstName", "", formclient.MsgMissingDetails},
		{"blank phone", "phone", "   ", formclient.MsgMissingDetails},
		{"bad name", "lastName", "D0e", enquiry.MsgLastName},
		{"bad email", "email", "jane@", enquiry.MsgEmail},
		{"short phone", "phone", "12345", enquiry.MsgPhone},
		{"empty message", "userMessage", "", enquiry.MsgMessageEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newController(t, "http://example.com")
			fill(t, c)
			require.NoError(t, c.Set(tt.field, tt.value))

			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		c := newController(t, "http://example.com")
		fill(t, c)
		assert.NoError(t, c.Validate())
	})
}

func TestController_Submit_InvalidMakesNoRequest(t *testing.T) {
	t.Parallel()

	srv, calls := stubServer(t, http.StatusOK, `{"success":true,"message":"ok"}`)
	n := &recordingNotifier{}
	c := newController(t, srv.URL, formclient.WithNotifier(n))
	require.NoError(t, c.Set("firstName", "Jane"))

	out := c.Submit(context.Background())
	assert.Equal(t, formclient.StatusInvalid, out.Status)
	assert.Equal(t, formclient.MsgMissingDetails, out.Message)
	assert.Zero(t, out.HTTPStatus)
	assert.Zero(t, calls.Load())
	assert.Equal(t, []string{formclient.MsgMissingDetails}, n.errors)
	assert.Equal(t, "Jane", c.Form().FirstName)
}

func TestController_Submit_Responses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus formclient.Status
		wantMsg    string
		wantClear  bool
	}{
		{"success with message", http.StatusOK, `{"success":true,"message":"Email sent successfully!"}`, formclient.StatusSent, "Email sent successfully!", true},
		{"success without body", http.StatusOK, ``, formclient.StatusSent, formclient.MsgSent, true},
		{"rate limited", http.StatusTooManyRequests, `{"success":false,"message":"Too many requests. Please try again after 15 minutes."}`, formclient.StatusFailed, formclient.MsgTooMany, false},
		{"server message", http.StatusInternalServerError, `{"success":false,"message":"Email authentication failed."}`, formclient.StatusFailed, "Email authentication failed.", false},
		{"markup stripped", http.StatusBadRequest, `{"success":false,"message":"<b>Bad</b> input"}`, formclient.StatusFailed, "Bad input", false},
		{"no message", http.StatusBadGateway, `not json`, formclient.StatusFailed, formclient.MsgFailed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv, calls := stubServer(t, tt.status, tt.body)
			n := &recordingNotifier{}
			c := newController(t, srv.URL, formclient.WithNotifier(n))
			fill(t, c)

			out := c.Submit(context.Background())
			assert.Equal(t, tt.wantStatus, out.Status)
			assert.Equal(t, tt.wantMsg, out.Message)
			assert.Equal(t, tt.status, out.HTTPStatus)
			assert.EqualValues(t, 1, calls.Load())

			if tt.wantClear {
				assert.Equal(t, enquiry.Request{}, c.Form())
				assert.Equal(t, []string{tt.wantMsg}, n.successes)
			} else {
				assert.Equal(t, "Jane", c.Form().FirstName)
				assert.Equal(t, []string{tt.wantMsg}, n.errors)
			}
		})
	}
}

func TestController_Submit_SendsJSON(t *testing.T) {
	t.Parallel()

	var got struct {
		path, method, contentType string
		body                      enquiry.Request
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path, got.method, got.contentType = r.URL.Path, r.Method, r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&got.body)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	c := newController(t, srv.URL+"/")
	fill(t, c)
	require.NoError(t, c.Set("firstName", "  Jane  "))

	out := c.Submit(context.Background())
	require.Equal(t, formclient.StatusSent, out.Status)
	assert.Equal(t, "/send-email", got.path)
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "application/json", got.contentType)
	assert.Equal(t, "Jane", got.body.FirstName)
	assert.Equal(t, "9876543210", got.body.Phone)
}

func TestController_Submit_Timeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	c := newController(t, srv.URL, formclient.WithHTTPClient(&http.Client{Timeout: 50 * time.Millisecond}))
	fill(t, c)

	out := c.Submit(context.Background())
	assert.Equal(t, formclient.StatusFailed, out.Status)
	assert.Equal(t, formclient.MsgTimeout, out.Message)
	assert.Equal(t, "Jane", c.Form().FirstName)
}

func TestController_Submit_NetworkError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := newController(t, url)
	fill(t, c)

	out := c.Submit(context.Background())
	assert.Equal(t, formclient.StatusFailed, out.Status)
	assert.Equal(t, formclient.MsgNetwork, out.Message)
	assert.Zero(t, out.HTTPStatus)
}

type recordingSender struct {
	mu   sync.Mutex
	msgs []*mailer.Message
}

func (s *recordingSender) Send(_ context.Context, msg *mailer.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msg)
	return nil
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.msgs)
}

func TestController_RoundTrip(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{}
	svc := enquiry.NewService(sender, enquiry.Config{Recipients: []string{"owner@example.com"}})
	limiter, err := ratelimit.NewFixedWindow(ratelimit.NewMemoryStore(10, 15*time.Minute), 5, 15*time.Minute)
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.Handle("POST /send-email", enquiry.NewHandler(svc, limiter))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := newController(t, srv.URL)

	for i := range 5 {
		fill(t, c)
		out := c.Submit(context.Background())
		require.Equal(t, formclient.StatusSent, out.Status, "attempt %d: %s", i+1, out.Message)
		assert.Equal(t, enquiry.MsgSent, out.Message)
	}
	assert.Equal(t, 5, sender.count())

	fill(t, c)
	out := c.Submit(context.Background())
	assert.Equal(t, formclient.StatusFailed, out.Status)
	assert.Equal(t, http.StatusTooManyRequests, out.HTTPStatus)
	assert.Equal(t, formclient.MsgTooMany, out.Message)
	assert.Equal(t, 5, sender.count())
}
