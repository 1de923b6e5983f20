package sanitizer

import (
	"html"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
}

// EscapeHTML escapes the five characters & < > " ' so the value is inert
// inside HTML text and attribute values.
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}

// UnescapeHTML reverses EscapeHTML and decodes any other HTML entity.
func UnescapeHTML(s string) string {
	return html.UnescapeString(s)
}

// StripTags removes every HTML element, dropping script and style content
// entirely, and returns readable plain text with entities decoded.
func StripTags(s string) string {
	initPolicies()
	return html.UnescapeString(strictPolicy.Sanitize(s))
}
