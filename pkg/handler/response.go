package handler

import (
	"encoding/json"
	"net/http"
)

// Envelope is the body of every JSON response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type jsonResponse struct {
	status  int
	body    any
	headers http.Header
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	for k, vals := range j.headers {
		for _, v := range vals {
			w.Header().Add(k, v)
		}
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSONOption configures a JSON response.
type JSONOption func(*jsonResponse)

// WithHeader adds a response header.
func WithHeader(key, value string) JSONOption {
	return func(r *jsonResponse) {
		if r.headers == nil {
			r.headers = http.Header{}
		}
		r.headers.Add(key, value)
	}
}

// JSON writes v with the given status.
func JSON(status int, v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: status, body: v}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Success writes 200 {"success":true,"message":msg}.
func Success(msg string, opts ...JSONOption) Response {
	return JSON(http.StatusOK, Envelope{Success: true, Message: msg}, opts...)
}

// Fail writes {"success":false,"message":msg} with status.
func Fail(status int, msg string, opts ...JSONOption) Response {
	return JSON(status, Envelope{Success: false, Message: msg}, opts...)
}
