package pipeline

import (
	"context"
	"fmt"
	"strings"
)

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block into HTML content.
// The block goes immediately before </head> when one exists; otherwise it is
// prepended to the document. CSS content is sanitized to prevent injection
// attacks.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" {
		return htmlContent
	}
	if ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"

	if idx := indexFold(htmlContent, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	return styleBlock + htmlContent
}

// indexFold is a case-insensitive strings.Index returning an offset into s
// itself. Searching a ToLower copy instead would skew the offset whenever an
// earlier rune changes byte length under lowercasing.
func indexFold(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(substr)], substr) {
			return i
		}
	}
	return -1
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	// Escape </ sequences to prevent closing the style tag prematurely
	return strings.ReplaceAll(css, "</", `<\/`)
}

// BuildResponsiveCSS returns the style rules that make an exported chart fill
// its viewport: the document root and body cover 100% with no margins and
// hidden overflow, the chart container and its drawable surface fill the
// available space capped at the configured maximums, and inner vector
// graphics scale down to fit while preserving aspect ratio.
//
// maxWidth of zero means no fixed width cap; the chart takes 100%.
func BuildResponsiveCSS(maxHeight, maxWidth int) string {
	maxWidthRule := "100%"
	if maxWidth > 0 {
		maxWidthRule = fmt.Sprintf("%dpx", maxWidth)
	}

	return fmt.Sprintf(`
html, body {
  height: 100%%;
  width: 100%%;
  margin: 0;
  padding: 0;
  overflow: hidden;
}
.plotly-graph-div, .main-svg {
  height: 100%% !important;
  width: 100%% !important;
  max-height: %dpx !important;
  max-width: %s !important;
}
svg {
  height: auto !important;
  width: auto !important;
  max-height: 100%% !important;
  max-width: 100%% !important;
}
`, maxHeight, maxWidthRule)
}
