// Package mailer abstracts the mail transport that delivers enquiry
// notifications.
//
// A Sender accepts a prepared Message. Four transports are available and
// selected by MAIL_TRANSPORT:
//
//   - smtp: an SMTP session through github.com/jordan-wright/email, STARTTLS
//     when the server offers it, implicit TLS when SMTP_SECURE is set.
//   - resend: the Resend HTTP API.
//   - postmark: the Postmark HTTP API.
//   - dev: writes .html, .txt and .json files into a directory instead of
//     sending, for local runs.
//
// New returns ErrNotConfigured when the chosen transport lacks credentials so
// the caller can keep serving and report a configuration error per request.
//
// Every transport error is passed through Classify, which wraps it with one of
// ErrAuth, ErrConnection, ErrTimeout or ErrSendFailed. Callers branch on the
// class with errors.Is and never show the underlying text to end users.
package mailer
