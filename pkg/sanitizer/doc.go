// Package sanitizer cleans untrusted form input before it is interpolated into
// outgoing mail.
//
// Helpers are small string transforms that can be chained with Apply or
// stored as a pipeline with Compose:
//
//	clean := sanitizer.Compose(
//	    sanitizer.Normalize,
//	    sanitizer.EscapeHTML,
//	)
//
//	safe := clean("  <b>Tom & Jerry</b> ") // "&lt;b&gt;Tom &amp; Jerry&lt;/b&gt;"
//
// EscapeHTML is the transform for values placed into HTML markup. StripTags is
// for the plain-text alternative part, where markup must disappear rather than
// be shown escaped. SingleLine is for values that end up in mail headers.
package sanitizer
