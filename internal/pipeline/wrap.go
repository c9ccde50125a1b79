package pipeline

import (
	"context"
	"fmt"
)

// FragmentWrapper supplies the document shell a bare chart fragment lacks.
type FragmentWrapper interface {
	Wrap(ctx context.Context, fragment, cssContent string) string
}

// fragmentShell wraps a markup fragment in a minimal complete HTML5 document.
const fragmentShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>%s</style>
</head>
<body>
%s
</body>
</html>`

// FragmentWrap implements FragmentWrapper.
type FragmentWrap struct{}

// Wrap embeds the fragment verbatim in a document shell carrying the given
// style rules in its head.
func (w *FragmentWrap) Wrap(ctx context.Context, fragment, cssContent string) string {
	if ctx.Err() != nil {
		return fragment
	}
	return fmt.Sprintf(fragmentShell, sanitizeCSS(cssContent), fragment)
}
