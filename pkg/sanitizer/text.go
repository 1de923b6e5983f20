package sanitizer

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Trim removes leading and trailing whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// Normalize converts s to Unicode NFC and trims surrounding whitespace, so
// visually identical input compares and renders the same way.
func Normalize(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// SingleLine replaces CR and LF runs with a single space. Use it for values
// placed into mail headers such as Subject.
func SingleLine(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == '\r' || r == '\n' })
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return strings.Join(filterEmpty(fields), " ")
}

func filterEmpty(parts []string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
