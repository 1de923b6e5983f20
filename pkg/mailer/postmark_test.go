package mailer_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mrz1836/postmark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infinityconsultancy/enquiry/pkg/mailer"
)

func newPostmarkSender(t *testing.T, h http.HandlerFunc) *mailer.PostmarkSender {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	client := postmark.NewClient("server-token", "")
	client.BaseURL = srv.URL

	return mailer.NewPostmarkSenderWithClient(client, "relay@example.com")
}

func TestNewPostmarkSender_NotConfigured(t *testing.T) {
	t.Parallel()

	_, err := mailer.NewPostmarkSender("", "", "relay@example.com")
	assert.ErrorIs(t, err, mailer.ErrNotConfigured)

	_, err = mailer.NewPostmarkSender("server-token", "", "")
	assert.ErrorIs(t, err, mailer.ErrNotConfigured)

	s, err := mailer.NewPostmarkSender("server-token", "", "relay@example.com")
	require.NoError(t, err)
	assert.Equal(t, "postmark", mailer.NameOf(s))
}

func TestPostmarkSender_Send(t *testing.T) {
	t.Parallel()

	var got map[string]any
	sender := newPostmarkSender(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/email", r.URL.Path)
		assert.Equal(t, "server-token", r.Header.Get("X-Postmark-Server-Token"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"To":"sales@example.com","MessageID":"b7bc2f4a","ErrorCode":0,"Message":"OK"}`))
	})

	msg := validMessage()
	msg.To = []string{"sales@example.com", "ops@example.com"}
	require.NoError(t, sender.Send(context.Background(), msg))

	assert.Equal(t, "relay@example.com", got["From"])
	assert.Equal(t, "sales@example.com, ops@example.com", got["To"])
	assert.Equal(t, "jane@example.com", got["ReplyTo"])
	assert.Equal(t, "enquiry", got["Tag"])
}

func TestPostmarkSender_InvalidToken(t *testing.T) {
	t.Parallel()

	sender := newPostmarkSender(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"ErrorCode":10,"Message":"No Account or Server API tokens were supplied in the HTTP headers."}`))
	})

	err := sender.Send(context.Background(), validMessage())
	assert.ErrorIs(t, err, mailer.ErrAuth)
}

func TestPostmarkSender_RejectedMessage(t *testing.T) {
	t.Parallel()

	sender := newPostmarkSender(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"ErrorCode":300,"Message":"Invalid email request"}`))
	})

	err := sender.Send(context.Background(), validMessage())
	require.Error(t, err)
	assert.NotErrorIs(t, err, mailer.ErrAuth)
	assert.NotErrorIs(t, err, mailer.ErrConnection)
}

func TestPostmarkSender_ForbiddenStatus(t *testing.T) {
	t.Parallel()

	sender := newPostmarkSender(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"ErrorCode":412,"Message":"Sending has been disabled"}`))
	})

	err := sender.Send(context.Background(), validMessage())
	assert.ErrorIs(t, err, mailer.ErrAuth)
}

func TestPostmarkSender_RejectedMessageQuotingStatusCodes(t *testing.T) {
	t.Parallel()

	sender := newPostmarkSender(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"ErrorCode":300,"Message":"Invalid 'To' address: '401@example.com' (403 unauthorized)"}`))
	})

	err := sender.Send(context.Background(), validMessage())
	assert.ErrorIs(t, err, mailer.ErrSendFailed)
	assert.NotErrorIs(t, err, mailer.ErrAuth)
}
