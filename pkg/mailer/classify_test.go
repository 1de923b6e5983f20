package mailer_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/infinityconsultancy/enquiry/pkg/mailer"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "deadline", err: context.DeadlineExceeded, want: mailer.ErrTimeout},
		{name: "wrapped deadline", err: fmt.Errorf("send: %w", context.DeadlineExceeded), want: mailer.ErrTimeout},
		{name: "net timeout", err: &net.OpError{Op: "dial", Net: "tcp", Err: timeoutErr{}}, want: mailer.ErrTimeout},
		{name: "smtp 535", err: &textproto.Error{Code: 535, Msg: "5.7.8 Authentication failed"}, want: mailer.ErrAuth},
		{name: "smtp 534", err: &textproto.Error{Code: 534, Msg: "Application-specific password required"}, want: mailer.ErrAuth},
		{name: "smtp 421", err: &textproto.Error{Code: 421, Msg: "Service not available"}, want: mailer.ErrConnection},
		{name: "smtp 550", err: &textproto.Error{Code: 550, Msg: "Mailbox unavailable"}, want: mailer.ErrSendFailed},
		{name: "dial refused", err: &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, want: mailer.ErrConnection},
		{name: "dns", err: &net.DNSError{Err: "no such host", Name: "smtp.invalid"}, want: mailer.ErrConnection},
		{name: "http 401", err: &mailer.StatusError{Provider: "resend", StatusCode: 401, Err: errors.New("[ERROR]: API key is invalid")}, want: mailer.ErrAuth},
		{name: "http 403", err: &mailer.StatusError{Provider: "resend", StatusCode: 403, Err: errors.New("[ERROR]: domain not verified")}, want: mailer.ErrAuth},
		{name: "http 422 quoting 401", err: &mailer.StatusError{Provider: "resend", StatusCode: 422, Err: errors.New("[ERROR]: invalid to 401@example.com")}, want: mailer.ErrSendFailed},
		{name: "http 504", err: &mailer.StatusError{Provider: "postmark", StatusCode: 504, Err: errors.New("gateway timeout")}, want: mailer.ErrTimeout},
		{name: "401 text without status", err: errors.New("401 Unauthorized"), want: mailer.ErrSendFailed},
		{name: "api key text without status", err: errors.New("[ERROR]: API key is invalid"), want: mailer.ErrSendFailed},
		{name: "refused text", err: errors.New("dial tcp: connection refused"), want: mailer.ErrConnection},
		{name: "other", err: errors.New("boom"), want: mailer.ErrSendFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := mailer.Classify(tt.err)
			assert.ErrorIs(t, got, tt.want)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestClassify_KeepsExistingClass(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("%w: postmark", mailer.ErrAuth)
	assert.Same(t, err, mailer.Classify(err))
	assert.NoError(t, mailer.Classify(nil))
}
