package pipeline

// Notes:
// - Rewrite: patches play button and slider durations, byte-identical elsewhere
// - locateLayoutObject: argument scanner survives nested braces and quoted commas
// - failure modes: missing anchor, missing controls, invalid JSON all no-op

import (
	"context"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

// animatedDoc mimics a Plotly export of an animated chart. The data argument
// deliberately contains braces, brackets, and commas inside string literals to
// exercise the argument scanner.
const animatedDoc = `<!DOCTYPE html>
<html>
<head><title>trend</title></head>
<body>
<div id="abc123" class="plotly-graph-div"></div>
<script type="text/javascript">
window.PLOTLYENV=window.PLOTLYENV || {};
Plotly.newPlot("abc123", [{"x":[1,2,3],"y":[10,20,30],"name":"reviews, {by} [month"}], {"updatemenus":[{"buttons":[{"args":[null,{"frame":{"duration":500,"redraw":false},"transition":{"duration":300}}],"label":"Play","method":"animate"}],"type":"buttons"}],"sliders":[{"steps":[{"args":[["2019"],{"frame":{"duration":500,"redraw":false},"transition":{"duration":300}}],"label":"2019","method":"animate"},{"args":[["2020"],{"frame":{"duration":500,"redraw":false},"transition":{"duration":300}}],"label":"2020","method":"animate"}]}],"title":{"text":"Reviews"}}, {"responsive": true});
</script>
</body>
</html>`

// noSlidersDoc has a play button but no slider controls; the rewrite must
// leave it alone.
const noSlidersDoc = `<html><body>
<script>Plotly.newPlot("d", [{"x":[1]}], {"updatemenus":[{"buttons":[{"args":[null,{"frame":{"duration":500}}]}]}]}, {});</script>
</body></html>`

// layoutOf extracts the layout object from a document for assertions.
func layoutOf(t *testing.T, doc string) gjson.Result {
	t.Helper()
	start, end, ok := locateLayoutObject(doc)
	if !ok {
		t.Fatal("locateLayoutObject failed on document")
	}
	return gjson.Parse(doc[start:end])
}

func TestPlotlyAnimationRewrite(t *testing.T) {
	t.Parallel()

	rewriter := &PlotlyAnimationRewrite{}
	out := rewriter.Rewrite(context.Background(), animatedDoc, 50)

	layout := layoutOf(t, out)

	if got := layout.Get("updatemenus.0.buttons.0.args.1.frame.duration").Int(); got != 50 {
		t.Errorf("button frame duration = %d, want 50", got)
	}
	if got := layout.Get("updatemenus.0.buttons.0.args.1.transition.duration").Int(); got != 0 {
		t.Errorf("button transition duration = %d, want 0", got)
	}

	steps := layout.Get("sliders.0.steps").Array()
	if len(steps) != 2 {
		t.Fatalf("slider steps = %d, want 2", len(steps))
	}
	for i, step := range steps {
		if got := step.Get("args.1.frame.duration").Int(); got != 50 {
			t.Errorf("step %d frame duration = %d, want 50", i, got)
		}
		if got := step.Get("args.1.transition.duration").Int(); got != 0 {
			t.Errorf("step %d transition duration = %d, want 0", i, got)
		}
	}
}

func TestPlotlyAnimationRewritePreservesSurroundings(t *testing.T) {
	t.Parallel()

	rewriter := &PlotlyAnimationRewrite{}
	out := rewriter.Rewrite(context.Background(), animatedDoc, 50)

	start, end, ok := locateLayoutObject(animatedDoc)
	if !ok {
		t.Fatal("locateLayoutObject failed on input")
	}
	outStart, outEnd, ok := locateLayoutObject(out)
	if !ok {
		t.Fatal("locateLayoutObject failed on output")
	}

	if out[:outStart] != animatedDoc[:start] {
		t.Error("content before the layout object changed")
	}
	if out[outEnd:] != animatedDoc[end:] {
		t.Error("content after the layout object changed")
	}
	if !strings.Contains(out, `"name":"reviews, {by} [month"`) {
		t.Error("data argument was modified")
	}
	if !strings.Contains(out, `"title":{"text":"Reviews"}`) {
		t.Error("unrelated layout field was modified")
	}
}

func TestPlotlyAnimationRewriteIdempotent(t *testing.T) {
	t.Parallel()

	rewriter := &PlotlyAnimationRewrite{}
	once := rewriter.Rewrite(context.Background(), animatedDoc, 50)
	twice := rewriter.Rewrite(context.Background(), once, 50)

	if once != twice {
		t.Error("second rewrite changed an already-rewritten document")
	}
}

func TestPlotlyAnimationRewriteSkips(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "no plotly call",
			input: `<html><body><svg></svg></body></html>`,
		},
		{
			name:  "missing slider controls",
			input: noSlidersDoc,
		},
		{
			name:  "missing play button controls",
			input: `<html><script>Plotly.newPlot("d", [], {"sliders":[{"steps":[{"args":[null,{}]}]}]}, {});</script></html>`,
		},
		{
			name:  "layout is not an object",
			input: `<html><script>Plotly.newPlot("d", [], "layout", {});</script></html>`,
		},
		{
			name:  "unterminated call",
			input: `<html><script>Plotly.newPlot("d", [{"x":[1]}], {"updatemenus":</script></html>`,
		},
		{
			name:  "layout not valid JSON",
			input: `<html><script>Plotly.newPlot("d", [], {updatemenus: fn(), sliders: []}, {});</script></html>`,
		},
		{
			name:  "empty document",
			input: "",
		},
	}

	rewriter := &PlotlyAnimationRewrite{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := rewriter.Rewrite(context.Background(), tt.input, 50); got != tt.input {
				t.Errorf("Rewrite changed input that should be skipped:\n%s", got)
			}
		})
	}
}

func TestPlotlyAnimationRewriteCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rewriter := &PlotlyAnimationRewrite{}
	if got := rewriter.Rewrite(ctx, animatedDoc, 50); got != animatedDoc {
		t.Error("Rewrite ran despite cancelled context")
	}
}

func TestLocateLayoutObject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		wantOK     bool
		wantLayout string
	}{
		{
			name:       "simple call",
			input:      `Plotly.newPlot("div", [], {"a":1}, {});`,
			wantOK:     true,
			wantLayout: `{"a":1}`,
		},
		{
			name:       "nested braces in data",
			input:      `Plotly.newPlot("div", [{"z":{"q":[1,{"r":2}]}}], {"a":{"b":[1,2]}}, {});`,
			wantOK:     true,
			wantLayout: `{"a":{"b":[1,2]}}`,
		},
		{
			name:       "braces and commas inside strings",
			input:      `Plotly.newPlot('div', [{"s":"x}, {y"}], {"t":"a, b"}, {});`,
			wantOK:     true,
			wantLayout: `{"t":"a, b"}`,
		},
		{
			name:       "escaped quote in string",
			input:      `Plotly.newPlot("div", [{"s":"he said \"hi, there\""}], {"u":1}, {});`,
			wantOK:     true,
			wantLayout: `{"u":1}`,
		},
		{
			name:   "no anchor",
			input:  `initChart("div", [], {}, {});`,
			wantOK: false,
		},
		{
			name:   "too few arguments",
			input:  `Plotly.newPlot("div");`,
			wantOK: false,
		},
		{
			name:   "unbalanced layout object",
			input:  `Plotly.newPlot("div", [], {"a":1`,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			start, end, ok := locateLayoutObject(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !tt.wantOK {
				return
			}
			if got := tt.input[start:end]; got != tt.wantLayout {
				t.Errorf("layout = %q, want %q", got, tt.wantLayout)
			}
		})
	}
}
