package mailer

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/resend/resend-go/v3"
)

// ResendSender delivers messages through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender creates a Resend sender.
func NewResendSender(apiKey, from string) (*ResendSender, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: RESEND_API_KEY is required", ErrNotConfigured)
	}
	if from == "" {
		return nil, fmt.Errorf("%w: sender address is required", ErrNotConfigured)
	}
	return NewResendSenderWithHTTPClient(nil, apiKey, from, nil), nil
}

// NewResendSenderWithHTTPClient builds the Resend client on hc. A nil
// baseURL keeps the SDK default.
func NewResendSenderWithHTTPClient(hc *http.Client, apiKey, from string, baseURL *url.URL) *ResendSender {
	client := resend.NewCustomClient(withStatusRecording(hc), apiKey)
	if baseURL != nil {
		client.BaseURL = baseURL
	}
	return &ResendSender{client: client, from: from}
}

func (s *ResendSender) Name() string { return string(TransportResend) }

// Send implements Sender.
func (s *ResendSender) Send(ctx context.Context, msg *Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	from := s.from
	if msg.From != "" {
		from = msg.From
	}

	req := &resend.SendEmailRequest{
		From:    from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
		ReplyTo: msg.ReplyTo,
		Headers: msg.Headers,
	}
	if msg.Tag != "" {
		req.Tags = []resend.Tag{{Name: "category", Value: msg.Tag}}
	}

	ctx, status := recordStatus(ctx)
	if _, err := s.client.Emails.SendWithContext(ctx, req); err != nil {
		return apiError("resend", *status, err)
	}
	return nil
}
