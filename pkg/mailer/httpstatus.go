package mailer

import (
	"context"
	"fmt"
	"net/http"
)

// StatusError carries the HTTP status an API provider answered with.
type StatusError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: http %d: %v", e.Provider, e.StatusCode, e.Err)
}

func (e *StatusError) Unwrap() error { return e.Err }

type statusKey struct{}

// statusTransport stores the response status in the *int the request
// context carries, since provider SDKs drop it from their errors.
type statusTransport struct {
	next http.RoundTripper
}

func (t statusTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(r)
	if resp != nil {
		if p, ok := r.Context().Value(statusKey{}).(*int); ok {
			*p = resp.StatusCode
		}
	}
	return resp, err
}

// withStatusRecording returns a shallow copy of hc whose transport records
// response statuses. A nil hc yields a fresh client.
func withStatusRecording(hc *http.Client) *http.Client {
	out := &http.Client{}
	if hc != nil {
		*out = *hc
	}
	next := out.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	if _, ok := next.(statusTransport); !ok {
		out.Transport = statusTransport{next: next}
	}
	return out
}

func recordStatus(ctx context.Context) (context.Context, *int) {
	status := new(int)
	return context.WithValue(ctx, statusKey{}, status), status
}

// apiError wraps err with the recorded status and classifies it.
func apiError(provider string, status int, err error) error {
	if status >= http.StatusBadRequest {
		err = &StatusError{Provider: provider, StatusCode: status, Err: err}
	} else {
		err = fmt.Errorf("%s: %w", provider, err)
	}
	return Classify(err)
}
