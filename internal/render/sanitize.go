// Package render produces the storefront's HTML documents: page shell,
// entity bodies, and embedded JSON-LD structured-data blocks. Rendering is
// pure with respect to its inputs; all I/O happens in the publisher.
package render

import (
	"html"
	"strings"
)

// sanitizer normalizes typographic characters that the hand-maintained source
// sheet tends to contain. Applied before any HTML escaping.
var sanitizer = strings.NewReplacer(
	"‘", "'", "’", "'", "‛", "'", "′", "'", // curly apostrophes
	"“", `"`, "”", `"`, "″", `"`, // curly quotes
	"–", "-", "—", "-", "−", "-", // en/em dashes, minus
	"\u00a0", " ", // non-breaking space
)

// Sanitize normalizes quotes, dashes, and whitespace in a user-facing text
// field. Idempotent; callers apply it exactly once per field per render.
func Sanitize(s string) string {
	s = sanitizer.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// FirstSentence truncates a long-form field to its first sentence, keeping
// the terminating period.
func FirstSentence(s string) string {
	if i := strings.Index(s, ". "); i >= 0 {
		return s[:i+1]
	}
	return s
}

// escapeAttr escapes a sanitized value for use inside an HTML attribute.
func escapeAttr(s string) string {
	return html.EscapeString(s)
}
