package pipeline

import (
	"context"
	"strings"
	"testing"
)

func TestInjectCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		css  string
		want string
	}{
		{
			name: "before closing head",
			html: `<html><head><title>t</title></head><body></body></html>`,
			css:  `body { margin: 0; }`,
			want: `<html><head><title>t</title><style>body { margin: 0; }</style></head><body></body></html>`,
		},
		{
			name: "uppercase head tag",
			html: `<HTML><HEAD></HEAD><BODY></BODY></HTML>`,
			css:  `p { color: red; }`,
			want: `<HTML><HEAD><style>p { color: red; }</style></HEAD><BODY></BODY></HTML>`,
		},
		{
			name: "no head prepends",
			html: `<div>fragment</div>`,
			css:  `div { padding: 0; }`,
			want: `<style>div { padding: 0; }</style><div>fragment</div>`,
		},
		{
			name: "empty css is a no-op",
			html: `<html><head></head></html>`,
			css:  "",
			want: `<html><head></head></html>`,
		},
		{
			// U+0130 lowercases to a longer byte sequence; the splice offset
			// must come from the original string, not a lowered copy.
			name: "multi-byte rune before uppercase head tag",
			html: `<html><head><title>İSTANBUL</title></HEAD><body></body></html>`,
			css:  `p { margin: 0; }`,
			want: `<html><head><title>İSTANBUL</title><style>p { margin: 0; }</style></HEAD><body></body></html>`,
		},
		{
			name: "style breakout escaped",
			html: `<html><head></head></html>`,
			css:  `p { } </style><script>alert(1)</script>`,
			want: `<html><head><style>p { } <\/style><script>alert(1)<\/script></style></head></html>`,
		},
	}

	injector := &CSSInjection{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := injector.InjectCSS(context.Background(), tt.html, tt.css)
			if got != tt.want {
				t.Errorf("InjectCSS() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInjectCSSCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	html := `<html><head></head></html>`
	injector := &CSSInjection{}
	if got := injector.InjectCSS(ctx, html, "body{}"); got != html {
		t.Error("InjectCSS ran despite cancelled context")
	}
}

func TestBuildResponsiveCSS(t *testing.T) {
	t.Parallel()

	t.Run("height cap with fixed width", func(t *testing.T) {
		t.Parallel()
		css := BuildResponsiveCSS(600, 800)
		for _, want := range []string{
			"max-height: 600px !important;",
			"max-width: 800px !important;",
			"overflow: hidden;",
			".plotly-graph-div, .main-svg",
			"margin: 0;",
		} {
			if !strings.Contains(css, want) {
				t.Errorf("CSS missing %q:\n%s", want, css)
			}
		}
	})

	t.Run("zero width means full width", func(t *testing.T) {
		t.Parallel()
		css := BuildResponsiveCSS(450, 0)
		if !strings.Contains(css, "max-height: 450px !important;") {
			t.Errorf("CSS missing height cap:\n%s", css)
		}
		if !strings.Contains(css, "max-width: 100% !important;") {
			t.Errorf("CSS missing 100%% width rule:\n%s", css)
		}
		if strings.Contains(css, "max-width: 0px") {
			t.Errorf("CSS has a zero width cap:\n%s", css)
		}
	})
}
