package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mrz1836/postmark"
)

// postmarkErrInvalidToken is the API error code for a missing or wrong
// server token.
const postmarkErrInvalidToken = 10

// PostmarkSender delivers messages through the Postmark API.
type PostmarkSender struct {
	client *postmark.Client
	from   string
}

// NewPostmarkSender creates a Postmark sender. The account token is optional
// for sending.
func NewPostmarkSender(serverToken, accountToken, from string) (*PostmarkSender, error) {
	if serverToken == "" {
		return nil, fmt.Errorf("%w: POSTMARK_SERVER_TOKEN is required", ErrNotConfigured)
	}
	if from == "" {
		return nil, fmt.Errorf("%w: sender address is required", ErrNotConfigured)
	}
	return NewPostmarkSenderWithClient(postmark.NewClient(serverToken, accountToken), from), nil
}

// NewPostmarkSenderWithClient uses a preconfigured client. Its HTTPClient
// is copied so response statuses can be recorded.
func NewPostmarkSenderWithClient(client *postmark.Client, from string) *PostmarkSender {
	c := *client
	c.HTTPClient = withStatusRecording(client.HTTPClient)
	return &PostmarkSender{client: &c, from: from}
}

func (s *PostmarkSender) Name() string { return string(TransportPostmark) }

// Send implements Sender.
func (s *PostmarkSender) Send(ctx context.Context, msg *Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	from := s.from
	if msg.From != "" {
		from = msg.From
	}

	var headers []postmark.Header
	for k, v := range msg.Headers {
		headers = append(headers, postmark.Header{Name: k, Value: v})
	}

	ctx, status := recordStatus(ctx)
	_, err := s.client.SendEmail(ctx, postmark.Email{
		From:     from,
		To:       strings.Join(msg.To, ", "),
		ReplyTo:  msg.ReplyTo,
		Subject:  msg.Subject,
		Tag:      msg.Tag,
		HTMLBody: msg.HTML,
		TextBody: msg.Text,
		Headers:  headers,
	})
	var apiErr postmark.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode == postmarkErrInvalidToken {
		return fmt.Errorf("%w: postmark: %w", ErrAuth, err)
	}
	if err != nil {
		return apiError("postmark", *status, err)
	}
	return nil
}
