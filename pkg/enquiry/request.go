package enquiry

import (
	"strings"

	"github.com/infinityconsultancy/enquiry/pkg/sanitizer"
)

// Request is the enquiry submitted by the contact form.
type Request struct {
	FirstName   string `json:"firstName" form:"firstName"`
	LastName    string `json:"lastName" form:"lastName"`
	Email       string `json:"email" form:"email"`
	Phone       string `json:"phone" form:"phone"`
	UserMessage string `json:"userMessage" form:"userMessage"`
}

type namedField struct {
	name  string
	value string
}

func (r Request) fields() []namedField {
	return []namedField{
		{"firstName", r.FirstName},
		{"lastName", r.LastName},
		{"email", r.Email},
		{"phone", r.Phone},
		{"userMessage", r.UserMessage},
	}
}

// Missing returns the JSON names of blank fields in form order.
func (r Request) Missing() []string {
	var missing []string
	for _, f := range r.fields() {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// escapeField normalises before escaping so entities are never split.
var escapeField = sanitizer.Compose(sanitizer.Normalize, sanitizer.EscapeHTML)

func (r Request) mapFields(fn func(string) string) Request {
	return Request{
		FirstName:   fn(r.FirstName),
		LastName:    fn(r.LastName),
		Email:       fn(r.Email),
		Phone:       fn(r.Phone),
		UserMessage: fn(r.UserMessage),
	}
}

// Normalize returns a copy with every field NFC-normalised and trimmed.
func (r Request) Normalize() Request {
	return r.mapFields(sanitizer.Normalize)
}

// Sanitize returns a normalised copy with every field HTML-escaped, ready
// for plain interpolation.
func Sanitize(r Request) Request {
	return r.mapFields(escapeField)
}
