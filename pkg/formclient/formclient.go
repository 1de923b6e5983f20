// Package formclient is the client side of the enquiry form: it holds the
// form state, validates it with the same rules as the server, submits it to
// POST /send-email and turns the result into a user-facing message.
//
// A Submit call issues at most one request and never retries.
package formclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/infinityconsultancy/enquiry/pkg/enquiry"
	"github.com/infinityconsultancy/enquiry/pkg/sanitizer"
	"github.com/infinityconsultancy/enquiry/pkg/validator"
)

// Messages shown to the user.
const (
	MsgMissingDetails = "Please enter your details before sending."
	MsgSent           = "Email sent successfully!"
	MsgTimeout        = "Request timed out. Please try again."
	MsgNetwork        = "Network error. Please check your connection and try again."
	MsgTooMany        = "Too many requests. Please wait a while before trying again."
	MsgFailed         = "Failed to send your message. Please try again!"
)

const maxResponseSize = 64 << 10

// ErrUnknownField is returned by Set for names outside the form.
var ErrUnknownField = errors.New("unknown form field")

// Status is the result class of a submit.
type Status int

const (
	StatusInvalid Status = iota + 1
	StatusSent
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusInvalid:
		return "invalid"
	case StatusSent:
		return "sent"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome describes what happened to one submit.
type Outcome struct {
	Status     Status
	Message    string
	HTTPStatus int // zero when no response was received
}

// Notifier presents outcomes to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}

// Config configures the controller.
type Config struct {
	BaseURL       string        `env:"ENQUIRY_API_URL" envDefault:"http://localhost:5000"`
	Timeout       time.Duration `env:"ENQUIRY_CLIENT_TIMEOUT" envDefault:"30s"`
	EmailPolicy   string        `env:"EMAIL_POLICY" envDefault:"any"`
	MessageMinLen int           `env:"MESSAGE_MIN_LENGTH" envDefault:"1"`
	MessageMaxLen int           `env:"MESSAGE_MAX_LENGTH" envDefault:"5000"`
}

// Controller holds one form. It is safe for concurrent use.
type Controller struct {
	mu       sync.Mutex
	form     enquiry.Request
	endpoint string
	client   *http.Client
	policy   enquiry.Policy
	notifier Notifier
}

// Option configures a Controller.
type Option func(*Controller)

// WithHTTPClient replaces the HTTP client. Its Timeout bounds each submit.
func WithHTTPClient(c *http.Client) Option {
	return func(ctl *Controller) {
		if c != nil {
			ctl.client = c
		}
	}
}

// WithNotifier sets the notifier.
func WithNotifier(n Notifier) Option {
	return func(ctl *Controller) {
		if n != nil {
			ctl.notifier = n
		}
	}
}

// WithPolicy overrides the validation policy from Config.
func WithPolicy(p enquiry.Policy) Option {
	return func(ctl *Controller) { ctl.policy = p }
}

// New creates a Controller.
func New(cfg Config, opts ...Option) (*Controller, error) {
	policy, err := enquiry.ParseEmailPolicy(cfg.EmailPolicy)
	if err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctl := &Controller{
		endpoint: strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/") + "/send-email",
		client:   &http.Client{Timeout: timeout},
		policy:   enquiry.Policy{Email: policy, MessageMinLen: cfg.MessageMinLen, MessageMaxLen: cfg.MessageMaxLen},
		notifier: nopNotifier{},
	}
	for _, opt := range opts {
		opt(ctl)
	}
	return ctl, nil
}

// Set updates one field by its JSON name.
func (c *Controller) Set(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch field {
	case "firstName":
		c.form.FirstName = value
	case "lastName":
		c.form.LastName = value
	case "email":
		c.form.Email = value
	case "phone":
		c.form.Phone = value
	case "userMessage":
		c.form.UserMessage = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Form returns a copy of the current form.
func (c *Controller) Form() enquiry.Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// Reset clears every field.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = enquiry.Request{}
}

// Validate applies the server's rules to the current form and returns the
// first failure.
func (c *Controller) Validate() error {
	return validate(c.Form().Normalize(), c.policy)
}

func validate(r enquiry.Request, p enquiry.Policy) error {
	for _, v := range []string{r.FirstName, r.LastName, r.Email, r.Phone} {
		if v == "" {
			return validator.ValidationErrors{{Field: "form", Message: MsgMissingDetails}}
		}
	}
	return enquiry.Validate(r, p)
}

// Submit validates the form and, when valid, posts it once. On success the
// form is cleared.
func (c *Controller) Submit(ctx context.Context) Outcome {
	form := c.Form().Normalize()

	if err := validate(form, c.policy); err != nil {
		return c.fail(Outcome{Status: StatusInvalid, Message: validator.FirstMessage(err)})
	}

	body, err := json.Marshal(form)
	if err != nil {
		return c.fail(Outcome{Status: StatusFailed, Message: MsgFailed})
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return c.fail(Outcome{Status: StatusFailed, Message: MsgFailed})
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return c.fail(Outcome{Status: StatusFailed, Message: transportMessage(err)})
	}
	defer resp.Body.Close()

	envelope := readEnvelope(resp.Body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		msg := envelope.Message
		if msg == "" {
			msg = MsgSent
		}
		c.Reset()
		c.notifier.Success(msg)
		return Outcome{Status: StatusSent, Message: msg, HTTPStatus: resp.StatusCode}
	}

	out := Outcome{Status: StatusFailed, Message: MsgFailed, HTTPStatus: resp.StatusCode}
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		out.Message = MsgTooMany
	case envelope.Message != "":
		out.Message = envelope.Message
	}
	return c.fail(out)
}

func (c *Controller) fail(out Outcome) Outcome {
	c.notifier.Error(out.Message)
	return out
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// readEnvelope decodes the response body. Messages are reduced to plain text.
func readEnvelope(r io.Reader) envelope {
	var env envelope
	if err := json.NewDecoder(io.LimitReader(r, maxResponseSize)).Decode(&env); err != nil {
		return envelope{}
	}
	env.Message = sanitizer.SingleLine(sanitizer.StripTags(env.Message))
	return env
}

func transportMessage(err error) string {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return MsgTimeout
	}
	return MsgNetwork
}
