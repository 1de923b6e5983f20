package binder

import "errors"

// Common binding errors
var (
	ErrNotApplicable     = errors.New("binder not applicable to request content type")
	ErrFailedToParseJSON = errors.New("failed to parse JSON request body")
	ErrFailedToParseForm = errors.New("failed to parse form data")
	ErrBodyTooLarge      = errors.New("request body too large")
)
