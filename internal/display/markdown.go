package display

import (
	"bytes"

	"github.com/yuin/goldmark"
)

// RenderMarkdown converts an event description to HTML for the detail view.
// On render failure it degrades to the escaped plain text.
func RenderMarkdown(src string) string {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return "<p>" + EscapeHTML(src) + "</p>"
	}
	return buf.String()
}
