package mailer

import "errors"

var (
	ErrNoRecipient = errors.New("email must have at least one recipient")
	ErrNoSubject   = errors.New("email must have a subject")
	ErrNoContent   = errors.New("email must have content")

	// ErrNotConfigured means the selected transport is missing credentials.
	ErrNotConfigured    = errors.New("mail transport not configured")
	ErrUnknownTransport = errors.New("unknown mail transport")

	// Failure classes returned by Classify.
	ErrAuth       = errors.New("mail transport authentication failed")
	ErrConnection = errors.New("mail transport connection failed")
	ErrTimeout    = errors.New("mail transport timed out")
	ErrSendFailed = errors.New("failed to send email")
)
