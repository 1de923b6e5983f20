package validator

import (
	"fmt"
	"regexp"
	"strings"
)

// emailRegex is the basic local@domain.tld shape used by contact forms.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// MatchesPattern validates value against a precompiled pattern. Empty values never match.
func MatchesPattern(field, value string, pattern *regexp.Regexp, description string) Rule {
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) == "" {
				return false
			}
			return pattern.MatchString(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must match %s pattern", description),
			TranslationKey: "validation.regex_pattern",
			TranslationValues: map[string]any{
				"field":       field,
				"pattern":     pattern.String(),
				"description": description,
			},
		},
	}
}

// ValidEmail validates the local@domain.tld shape without RFC 5322 parsing,
// so display-name forms like "Bob <bob@example.com>" are rejected.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return emailRegex.MatchString(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid email address",
			TranslationKey: "validation.email",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// EmailDomain validates an address that must belong to exactly one domain.
func EmailDomain(field, value, domain string) Rule {
	suffix := "@" + strings.ToLower(domain)
	return Rule{
		Check: func() bool {
			if !emailRegex.MatchString(value) {
				return false
			}
			return strings.HasSuffix(strings.ToLower(value), suffix)
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be a %s address", domain),
			TranslationKey: "validation.email_domain",
			TranslationValues: map[string]any{
				"field":  field,
				"domain": domain,
			},
		},
	}
}

// DigitsExact validates that value consists of exactly n ASCII digits.
func DigitsExact(field, value string, n int) Rule {
	return Rule{
		Check: func() bool {
			if len(value) != n {
				return false
			}
			for i := 0; i < len(value); i++ {
				if value[i] < '0' || value[i] > '9' {
					return false
				}
			}
			return true
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be exactly %d digits", n),
			TranslationKey: "validation.digits",
			TranslationValues: map[string]any{
				"field":  field,
				"digits": n,
			},
		},
	}
}
