// Package textproc normalizes user-written content and renders it to HTML.
package textproc

import (
	"bytes"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

type Processor struct {
	strip    *bluemonday.Policy
	sanitize *bluemonday.Policy
	md       goldmark.Markdown
}

func New() *Processor {
	return &Processor{
		strip:    bluemonday.StrictPolicy(),
		sanitize: bluemonday.UGCPolicy(),
		md: goldmark.New(
			goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
			goldmark.WithRendererOptions(goldmarkhtml.WithHardWraps()),
		),
	}
}

// Normalize trims surrounding whitespace and strips any markup tags, leaving
// the text the user meant. Entities are decoded back so "a & b" survives.
func (p *Processor) Normalize(content string) string {
	stripped := p.strip.Sanitize(strings.TrimSpace(content))
	return strings.TrimSpace(html.UnescapeString(stripped))
}

// Render turns markdown content into sanitized HTML.
func (p *Processor) Render(content string) string {
	var buf bytes.Buffer
	if err := p.md.Convert([]byte(content), &buf); err != nil {
		return html.EscapeString(content)
	}
	return strings.TrimSpace(p.sanitize.Sanitize(buf.String()))
}
