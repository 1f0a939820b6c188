package web

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
)

// CommonMark without linkify, so addresses in prose stay plain text.
// Raw HTML in walkthroughs is omitted by the default renderer.
var markdown = goldmark.New()

// renderMarkdown converts a connect walkthrough to HTML
func renderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
