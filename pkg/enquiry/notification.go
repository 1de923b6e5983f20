package enquiry

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.977 generate -f notification.templ

import (
	"context"
	"fmt"
	"strings"

	"github.com/infinityconsultancy/enquiry/pkg/mailer"
	"github.com/infinityconsultancy/enquiry/pkg/mailer/templates"
	"github.com/infinityconsultancy/enquiry/pkg/sanitizer"
)

// NotificationTag labels enquiry notifications at the mail provider.
const NotificationTag = "enquiry"

// Subject returns the notification subject for r.
func Subject(r Request) string {
	n := r.Normalize()
	return sanitizer.SingleLine(fmt.Sprintf("New Inquiry from %s %s", n.FirstName, n.LastName))
}

// messageLines splits the message on any line ending; the template joins
// the lines with <br>.
func messageLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(strings.ReplaceAll(s, "\r", "\n"), "\n")
}

func notificationText(s Request) string {
	return fmt.Sprintf("New Enquiry\n\nName: %s %s\nEmail: %s\nPhone: %s\n\nMessage:\n%s\n",
		s.FirstName, s.LastName, s.Email, s.Phone, s.UserMessage)
}

// BuildNotification renders the notification for a validated request.
// The HTML body is escaped by the template, the text body by Sanitize.
func BuildNotification(ctx context.Context, r Request, recipients []string) (*mailer.Message, error) {
	n := r.Normalize()

	html, err := templates.Render(ctx, notificationEmail(n))
	if err != nil {
		return nil, fmt.Errorf("render notification: %w", err)
	}

	return &mailer.Message{
		To:      recipients,
		ReplyTo: sanitizer.SingleLine(n.Email),
		Subject: Subject(r),
		HTML:    html,
		Text:    notificationText(Sanitize(r)),
		Tag:     NotificationTag,
	}, nil
}
