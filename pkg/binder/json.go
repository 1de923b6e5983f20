package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// DefaultMaxJSONSize is the default maximum size for JSON request bodies (1MB).
const DefaultMaxJSONSize = 1 << 20 // 1 MB

// JSON creates a JSON binder function. Requests whose Content-Type is not
// application/json yield ErrNotApplicable.
//
// Example:
//
//	http.Handle("/send-email", handler.Wrap(submit,
//		handler.WithBinders(binder.JSON()),
//	))
func JSON() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if err := r.Context().Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrFailedToParseJSON, err)
		}

		if !hasMediaType(r, "application/json") {
			return ErrNotApplicable
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, DefaultMaxJSONSize+1))
		if err != nil {
			return fmt.Errorf("%w: failed to read request body: %w", ErrFailedToParseJSON, err)
		}
		if len(body) > DefaultMaxJSONSize {
			return fmt.Errorf("%w: %w (max %d bytes)", ErrFailedToParseJSON, ErrBodyTooLarge, DefaultMaxJSONSize)
		}

		trimmed := bytes.TrimSpace(body)
		if len(trimmed) == 0 {
			return fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
		}
		if trimmed[0] != '{' {
			return fmt.Errorf("%w: expected a JSON object", ErrFailedToParseJSON)
		}

		decoder := json.NewDecoder(bytes.NewReader(trimmed))
		if err := decoder.Decode(v); err != nil {
			return fmt.Errorf("%w: %w", ErrFailedToParseJSON, err)
		}

		// Ensure entire body was consumed
		var extra json.RawMessage
		if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: unexpected data after JSON object", ErrFailedToParseJSON)
		}

		return nil
	}
}

func hasMediaType(r *http.Request, want string) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mediaType == want
}
