package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DevSender writes messages to a directory instead of sending them.
// Each message produces <stamp>_<tag>_<id>.html, .txt and .json files.
type DevSender struct {
	dir string
	now func() time.Time
}

// NewDevSender creates a development sender. The directory is created on
// first send.
func NewDevSender(dir string) *DevSender {
	return &DevSender{dir: dir, now: time.Now}
}

func (d *DevSender) Name() string { return string(TransportDev) }

// Dir returns the output directory.
func (d *DevSender) Dir() string { return d.dir }

type devMetadata struct {
	Timestamp string            `json:"timestamp"`
	From      string            `json:"from,omitempty"`
	To        []string          `json:"to"`
	ReplyTo   string            `json:"reply_to,omitempty"`
	Subject   string            `json:"subject"`
	Tag       string            `json:"tag,omitempty"`
	Headers   map[string]string `json:"headers,omitempty"`
}

// Send implements Sender.
func (d *DevSender) Send(ctx context.Context, msg *Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return Classify(err)
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("%w: create directory: %w", ErrSendFailed, err)
	}

	now := d.now()
	identifier := msg.Tag
	if identifier == "" {
		identifier = msg.Subject
	}
	base := fmt.Sprintf("%s_%s_%s",
		now.Format("2006_01_02_150405"),
		sanitizeFilename(identifier),
		uuid.NewString()[:8],
	)

	files := map[string][]byte{}
	if msg.HTML != "" {
		files[base+".html"] = []byte(msg.HTML)
	}
	if msg.Text != "" {
		files[base+".txt"] = []byte(msg.Text)
	}

	meta, err := json.MarshalIndent(devMetadata{
		Timestamp: now.Format(time.RFC3339),
		From:      msg.From,
		To:        msg.To,
		ReplyTo:   msg.ReplyTo,
		Subject:   msg.Subject,
		Tag:       msg.Tag,
		Headers:   msg.Headers,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal metadata: %w", ErrSendFailed, err)
	}
	files[base+".json"] = meta

	for name, data := range files {
		if err := os.WriteFile(filepath.Join(d.dir, name), data, 0o644); err != nil {
			return fmt.Errorf("%w: write %s: %w", ErrSendFailed, name, err)
		}
	}
	return nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = unsafeFilenameChars.ReplaceAllString(s, "")
	const maxLength = 100
	if len(s) > maxLength {
		s = s[:maxLength]
	}
	if s == "" {
		s = "email"
	}
	return strings.ToLower(s)
}
