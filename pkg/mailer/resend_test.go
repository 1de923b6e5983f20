package mailer_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infinityconsultancy/enquiry/pkg/mailer"
)

func newResendSender(t *testing.T, h http.HandlerFunc) *mailer.ResendSender {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)

	return mailer.NewResendSenderWithHTTPClient(srv.Client(), "re_test", "Website Enquiry <relay@example.com>", base)
}

func TestNewResendSender_NotConfigured(t *testing.T) {
	t.Parallel()

	_, err := mailer.NewResendSender("", "relay@example.com")
	assert.ErrorIs(t, err, mailer.ErrNotConfigured)

	s, err := mailer.NewResendSender("re_test", "relay@example.com")
	require.NoError(t, err)
	assert.Equal(t, "resend", mailer.NameOf(s))
}

func TestResendSender_Send(t *testing.T) {
	t.Parallel()

	var got map[string]any
	sender := newResendSender(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"49a3999c-0ce1-4ea6-ab68-afcd6dc2e794"}`))
	})

	require.NoError(t, sender.Send(context.Background(), validMessage()))
	assert.Equal(t, "Website Enquiry <relay@example.com>", got["from"])
	assert.Equal(t, "New Inquiry from Jane Doe", got["subject"])
	assert.Equal(t, "<p>Hello</p>", got["html"])
	assert.Equal(t, []any{"sales@example.com"}, got["to"])
}

func TestResendSender_AuthFailure(t *testing.T) {
	t.Parallel()

	sender := newResendSender(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"statusCode":403,"name":"validation_error","message":"API key is invalid"}`))
	})

	err := sender.Send(context.Background(), validMessage())
	assert.ErrorIs(t, err, mailer.ErrAuth)
}

func TestResendSender_ConnectionFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	srv.Close()

	sender := mailer.NewResendSenderWithHTTPClient(nil, "re_test", "relay@example.com", base)

	err = sender.Send(context.Background(), validMessage())
	assert.ErrorIs(t, err, mailer.ErrConnection)
}

func TestResendSender_StatusDecidesClass(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		want   error
		notErr error
	}{
		{
			name:   "unauthorized without auth wording",
			status: http.StatusUnauthorized,
			body:   `{"message":"missing credentials"}`,
			want:   mailer.ErrAuth,
		},
		{
			name:   "validation error quoting 401 and 403",
			status: http.StatusUnprocessableEntity,
			body:   `{"statusCode":422,"name":"validation_error","message":"Invalid to field: ops-401@example.com, room 403"}`,
			want:   mailer.ErrSendFailed,
			notErr: mailer.ErrAuth,
		},
		{
			name:   "server error mentioning forbidden",
			status: http.StatusInternalServerError,
			body:   `{"message":"upstream forbidden list unavailable"}`,
			want:   mailer.ErrSendFailed,
			notErr: mailer.ErrAuth,
		},
		{
			name:   "service unavailable",
			status: http.StatusServiceUnavailable,
			body:   `{"message":"try later"}`,
			want:   mailer.ErrConnection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sender := newResendSender(t, func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			err := sender.Send(context.Background(), validMessage())
			assert.ErrorIs(t, err, tt.want)
			if tt.notErr != nil {
				assert.NotErrorIs(t, err, tt.notErr)
			}

			var stErr *mailer.StatusError
			require.ErrorAs(t, err, &stErr)
			assert.Equal(t, tt.status, stErr.StatusCode)
		})
	}
}
