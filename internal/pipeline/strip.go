package pipeline

import (
	"context"
	"regexp"
)

// DimensionStripper removes hard-coded pixel sizing that would otherwise
// override responsive scaling.
type DimensionStripper interface {
	StripSVGAttrs(ctx context.Context, htmlContent string) string
	StripInlineStyles(ctx context.Context, htmlContent string) string
}

// DimensionStrip implements DimensionStripper with targeted patterns.
// Already-stripped input passes through unchanged, so the transform is
// idempotent.
type DimensionStrip struct{}

// Pixel-valued dimension attributes on vector-graphic root tags.
// Exports bake the notebook's figure size into the <svg> tag; the responsive
// style block cannot win against these, so they are removed outright.
var (
	svgHeightAttrPattern = regexp.MustCompile(`(<svg\b[^>]*?)\s+height="\d+"`)
	svgWidthAttrPattern  = regexp.MustCompile(`(<svg\b[^>]*?)\s+width="\d+"`)
)

// Pixel-valued height/width declarations inside inline style text.
// Fragment exports (map renderers in particular) size their container this way.
var inlineStylePxPattern = regexp.MustCompile(`(?i)(?:height|width)\s*:\s*\d+px\s*;?`)

// StripSVGAttrs removes height="<digits>" and width="<digits>" attributes from
// every <svg> tag in the content.
func (d *DimensionStrip) StripSVGAttrs(ctx context.Context, htmlContent string) string {
	if ctx.Err() != nil {
		return htmlContent
	}
	htmlContent = svgHeightAttrPattern.ReplaceAllString(htmlContent, "$1")
	htmlContent = svgWidthAttrPattern.ReplaceAllString(htmlContent, "$1")
	return htmlContent
}

// StripInlineStyles removes height: <digits>px and width: <digits>px
// declarations anywhere in the content.
func (d *DimensionStrip) StripInlineStyles(ctx context.Context, htmlContent string) string {
	if ctx.Err() != nil {
		return htmlContent
	}
	return inlineStylePxPattern.ReplaceAllString(htmlContent, "")
}
