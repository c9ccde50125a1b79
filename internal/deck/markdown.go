package deck

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrMarkdownRender indicates markdown conversion failed.
var ErrMarkdownRender = errors.New("markdown rendering failed")

// Renderer converts deck prose (intros, captions, the subtitle) to sanitized
// HTML for the section pages. Deck files are data, not trusted templates, so
// the goldmark output passes through bluemonday before reaching a page.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer creates a Renderer with GFM extensions and syntax highlighting.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // Tables, strikethrough, autolinks, task lists
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // CSS classes, styled by the page shell
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(), // Self-closing tags
			// Note: WithUnsafe() intentionally NOT used; raw HTML in deck
			// prose is dropped by goldmark and anything left is sanitized.
		),
	)

	policy := bluemonday.UGCPolicy()
	// Keep the classes chroma and goldmark emit so highlighting survives.
	policy.AllowAttrs("class").OnElements("span", "code", "pre", "div")

	return &Renderer{md: md, policy: policy}
}

// Render converts markdown to sanitized HTML. Empty input yields empty output.
func (r *Renderer) Render(content string) (template.HTML, error) {
	if content == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMarkdownRender, err)
	}

	// #nosec G203 -- sanitized by bluemonday immediately above
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes())), nil
}
