package enquiry

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/infinityconsultancy/enquiry/pkg/validator"
)

// User-facing messages. They are returned verbatim in response envelopes.
const (
	MsgMissingFields    = "All fields are required."
	MsgFirstName        = "First name can only contain letters and spaces."
	MsgLastName         = "Last name can only contain letters and spaces."
	MsgEmail            = "Please enter a valid email address."
	MsgGmail            = "Email must be a valid Gmail address."
	MsgPhone            = "Phone number must be a 10-digit number."
	MsgMessageEmpty     = "Message field cannot be empty."
	msgMessageMinLength = "Message must be at least %d characters long."
	msgMessageMaxLength = "Message must be at most %d characters long."
)

// ErrMissingFields wraps the names of blank fields.
var ErrMissingFields = errors.New("missing required fields")

var namePattern = regexp.MustCompile(`^[A-Za-z\s]+$`)

// EmailPolicy selects which addresses are accepted.
type EmailPolicy string

const (
	// EmailPolicyAny accepts any local@domain.tld address.
	EmailPolicyAny EmailPolicy = "any"
	// EmailPolicyGmail accepts only @gmail.com addresses.
	EmailPolicyGmail EmailPolicy = "gmail"
)

// ParseEmailPolicy parses a policy name. Empty means EmailPolicyAny.
func ParseEmailPolicy(s string) (EmailPolicy, error) {
	switch p := EmailPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "", EmailPolicyAny:
		return EmailPolicyAny, nil
	case EmailPolicyGmail:
		return EmailPolicyGmail, nil
	default:
		return "", fmt.Errorf("%w: unknown email policy %q", ErrInvalidConfig, s)
	}
}

// Policy holds the configurable parts of the validation contract. A zero
// MessageMaxLen means no upper bound.
type Policy struct {
	Email         EmailPolicy
	MessageMinLen int
	MessageMaxLen int
}

// CheckRequired reports blank fields as ErrMissingFields.
func CheckRequired(r Request) error {
	if missing := r.Missing(); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(missing, ", "))
	}
	return nil
}

// Validate checks r in order and stops at the first failure: contact
// details present, names, email per policy, phone, message. The returned
// error is a validator.ValidationErrors with one user-facing message.
func Validate(r Request, p Policy) error {
	rules := []validator.Rule{
		validator.RequiredString("firstName", r.FirstName).WithMessage(MsgMissingFields),
		validator.RequiredString("lastName", r.LastName).WithMessage(MsgMissingFields),
		validator.RequiredString("email", r.Email).WithMessage(MsgMissingFields),
		validator.RequiredString("phone", r.Phone).WithMessage(MsgMissingFields),
		validator.MatchesPattern("firstName", r.FirstName, namePattern, "letters and spaces").WithMessage(MsgFirstName),
		validator.MatchesPattern("lastName", r.LastName, namePattern, "letters and spaces").WithMessage(MsgLastName),
	}

	if p.Email == EmailPolicyGmail {
		rules = append(rules, validator.EmailDomain("email", r.Email, "gmail.com").WithMessage(MsgGmail))
	} else {
		rules = append(rules, validator.ValidEmail("email", r.Email).WithMessage(MsgEmail))
	}

	rules = append(rules, validator.DigitsExact("phone", r.Phone, 10).WithMessage(MsgPhone))

	rules = append(rules, validator.RequiredString("userMessage", r.UserMessage).WithMessage(MsgMessageEmpty))
	if p.MessageMinLen > 1 {
		rules = append(rules, validator.MinLenString("userMessage", r.UserMessage, p.MessageMinLen).
			WithMessage(fmt.Sprintf(msgMessageMinLength, p.MessageMinLen)))
	}
	if p.MessageMaxLen > 0 {
		rules = append(rules, validator.MaxLenString("userMessage", r.UserMessage, p.MessageMaxLen).
			WithMessage(fmt.Sprintf(msgMessageMaxLength, p.MessageMaxLen)))
	}

	return validator.First(rules...)
}
