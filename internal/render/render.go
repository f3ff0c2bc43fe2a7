// Package render turns generated text into minimal HTML for display.
package render

import (
	"html"
	"regexp"
)

var (
	boldRE   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	bulletRE = regexp.MustCompile(`(?m)^\* `)
)

// HTML escapes text and then renders **bold** spans as <strong> and lines
// starting with "* " as bullets. It is a textual substitution, not a
// Markdown parser. Only apply it to successful generator output.
func HTML(text string) string {
	out := html.EscapeString(text)
	out = boldRE.ReplaceAllString(out, "<strong>$1</strong>")
	out = bulletRE.ReplaceAllString(out, "• ")
	return out
}
