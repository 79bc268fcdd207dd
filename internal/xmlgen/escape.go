package xmlgen

import "strings"

// escaper rewrites the five XML special characters in a single pass.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Escape returns text with XML special characters escaped.
// All other characters pass through unchanged.
func Escape(text string) string {
	if text == "" {
		return ""
	}
	return escaper.Replace(text)
}
