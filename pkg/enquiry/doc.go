// Package enquiry implements the contact-form submission pipeline behind
// POST /send-email.
//
// A request moves through these gates, each of which may end it early with
// a JSON error envelope:
//
//	rate limit → presence → field validation → configuration → sanitize → dispatch
//
// With RATE_LIMIT_ORDER=after_validation the rate limit gate moves after field
// validation so malformed submissions do not consume a client's budget.
//
// Dispatch sends exactly one notification through a mailer.Sender and races
// it against Config.SendTimeout. Whichever settles first decides the
// response; a send that finishes after the deadline is ignored.
package enquiry
