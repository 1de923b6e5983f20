package handler

import (
	"errors"
	"net/http"
)

// ErrNilResponse indicates a handler returned nil instead of a Response.
var ErrNilResponse = errors.New("handler returned nil response")

// HTTPError is an error with a status code and a message safe to show to
// clients.
type HTTPError struct {
	Code    int
	Message string
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Message
}

// Error creates an HTTPError. An empty message falls back to the status text.
func Error(code int, msg string) HTTPError {
	if msg == "" {
		msg = http.StatusText(code)
	}
	return HTTPError{Code: code, Message: msg}
}

var (
	ErrBadRequest          = Error(http.StatusBadRequest, "Invalid request body.")
	ErrTooManyRequests     = Error(http.StatusTooManyRequests, "Too many requests. Please try again later.")
	ErrInternalServerError = Error(http.StatusInternalServerError, "Internal Server Error")
)
