package pipeline

import (
	"context"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// plotlyCallAnchor marks the chart-initialization call in exported documents.
// The rewrite only runs when this stable marker is present.
const plotlyCallAnchor = "Plotly.newPlot("

// AnimationRewriter adjusts animation timing embedded in exported chart documents.
type AnimationRewriter interface {
	Rewrite(ctx context.Context, htmlContent string, frameDurationMs int) string
}

// PlotlyAnimationRewrite rewrites the frame-advance and transition durations
// carried by the play button and every slider step of an animated Plotly
// export. Exports bake the notebook's timing into the layout object; replaying
// them at dashboard speed requires patching those durations in place.
//
// The rewrite is strictly best-effort: any deviation from the expected
// document shape returns the input unchanged. Animation speed is cosmetic and
// must never break an otherwise renderable chart.
type PlotlyAnimationRewrite struct{}

// Rewrite locates the layout object inside the Plotly.newPlot call, patches
// its animation durations, and splices it back. Everything outside the layout
// object stays byte-identical. Returns the input unchanged if the document
// does not match the expected shape.
func (p *PlotlyAnimationRewrite) Rewrite(ctx context.Context, htmlContent string, frameDurationMs int) string {
	if ctx.Err() != nil {
		return htmlContent
	}

	start, end, ok := locateLayoutObject(htmlContent)
	if !ok {
		return htmlContent
	}

	rewritten, ok := rewriteAnimationDurations(htmlContent[start:end], frameDurationMs)
	if !ok {
		return htmlContent
	}

	return htmlContent[:start] + rewritten + htmlContent[end:]
}

// locateLayoutObject finds the byte range of the layout argument, the third
// argument of Plotly.newPlot(div, data, layout, config). The scanner tracks
// nesting depth and string literals, so nested braces and quoted commas inside
// the data argument do not confuse it.
func locateLayoutObject(htmlContent string) (start, end int, ok bool) {
	anchor := strings.Index(htmlContent, plotlyCallAnchor)
	if anchor == -1 {
		return 0, 0, false
	}

	base := anchor + len(plotlyCallAnchor)
	rest := htmlContent[base:]

	// Skip the first two arguments: the target div and the data array.
	pos := 0
	for range 2 {
		next, found := skipArgument(rest, pos)
		if !found {
			return 0, 0, false
		}
		pos = next
	}

	// The layout argument must be an object literal.
	pos = skipWhitespace(rest, pos)
	if pos >= len(rest) || rest[pos] != '{' {
		return 0, 0, false
	}

	objEnd, found := matchBalanced(rest, pos)
	if !found {
		return 0, 0, false
	}
	return base + pos, base + objEnd, true
}

// rewriteAnimationDurations patches the play button's and every slider step's
// frame and transition durations inside a layout JSON object. The layout must
// carry both the play-button control collection and the slider-steps
// collection; anything else is not the animation-controls structure this
// rewrite targets and is left alone.
func rewriteAnimationDurations(layout string, frameDurationMs int) (string, bool) {
	if !gjson.Valid(layout) {
		return "", false
	}

	root := gjson.Parse(layout)
	if !root.Get("updatemenus.0.buttons").Exists() || !root.Get("sliders.0.steps").Exists() {
		return "", false
	}

	out := layout
	var err error
	set := func(path string, value int) {
		if err != nil {
			return
		}
		out, err = sjson.Set(out, path, value)
	}

	// Play button: frame-advance speed for manual play, transition always zero.
	set("updatemenus.0.buttons.0.args.1.frame.duration", frameDurationMs)
	set("updatemenus.0.buttons.0.args.1.transition.duration", 0)

	// Slider steps: same two durations for every step (autoplay path).
	for i := range root.Get("sliders.0.steps").Array() {
		step := "sliders.0.steps." + strconv.Itoa(i)
		set(step+".args.1.frame.duration", frameDurationMs)
		set(step+".args.1.transition.duration", 0)
	}

	if err != nil {
		return "", false
	}
	return out, true
}

// skipArgument advances past one call argument, returning the index just after
// its trailing comma. Commas inside strings or nested (), [], {} do not count.
func skipArgument(s string, pos int) (int, bool) {
	depth := 0
	for i := pos; i < len(s); i++ {
		switch s[i] {
		case '"', '\'':
			j, ok := skipString(s, i)
			if !ok {
				return 0, false
			}
			i = j
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth == 0 {
				// Ran off the end of the call before finding the argument.
				return 0, false
			}
			depth--
		case ',':
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}

// skipString returns the index of the closing quote matching the quote at start.
func skipString(s string, start int) (int, bool) {
	quote := s[start]
	for i := start + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case quote:
			return i, true
		}
	}
	return 0, false
}

// matchBalanced returns the index just past the object or array opening at pos.
func matchBalanced(s string, pos int) (int, bool) {
	depth := 0
	for i := pos; i < len(s); i++ {
		switch s[i] {
		case '"':
			j, ok := skipString(s, i)
			if !ok {
				return 0, false
			}
			i = j
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return i + 1, true
			}
			if depth < 0 {
				return 0, false
			}
		}
	}
	return 0, false
}

func skipWhitespace(s string, pos int) int {
	for pos < len(s) {
		switch s[pos] {
		case ' ', '\t', '\n', '\r':
			pos++
		default:
			return pos
		}
	}
	return pos
}
