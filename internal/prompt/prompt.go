// Package prompt builds the rewrite instruction sent to the generator and
// estimates its size.
package prompt

import "fmt"

// Template is the rewrite instruction. The style label and the notes are
// embedded verbatim.
const Template = "Rewrite the following meeting notes in %s style:\n\n%s"

// Build formats the instruction for a style and source text.
func Build(style, text string) string {
	return fmt.Sprintf(Template, style, text)
}
