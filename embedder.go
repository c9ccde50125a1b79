package chartdeck

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/avelin/chartdeck/internal/assets"
	"github.com/avelin/chartdeck/internal/pipeline"
)

// Compile-time interface implementation checks.
// These ensure implementations satisfy their interfaces at compile time,
// catching signature mismatches before runtime.
var (
	_ pipeline.AnimationRewriter = (*pipeline.PlotlyAnimationRewrite)(nil)
	_ pipeline.DimensionStripper = (*pipeline.DimensionStrip)(nil)
	_ pipeline.CSSInjector       = (*pipeline.CSSInjection)(nil)
	_ pipeline.FragmentWrapper   = (*pipeline.FragmentWrap)(nil)
	_ snapshotRenderer           = (*rodRenderer)(nil)
)

// animatedMarker in a filename signals the export carries the
// animation-controls structure (play button plus time slider). The filenames
// are a de facto contract with the upstream charting pipeline.
const animatedMarker = "animated"

// kindSniffLimit bounds how far into an export the kind sniffer looks.
const kindSniffLimit = 1024

// Embedder orchestrates the chart embedding pipeline.
// Create with NewEmbedder, embed with Embed, and Close when done (Close only
// matters when Snapshot has launched a browser).
//
// An Embedder is stateless between calls and safe for concurrent use; assets
// are read-only inputs and transforms run on private in-memory copies.
type Embedder struct {
	cfg      embedderConfig
	resolver *assets.Resolver
	animator pipeline.AnimationRewriter
	stripper pipeline.DimensionStripper
	injector pipeline.CSSInjector
	wrapper  pipeline.FragmentWrapper
	renderer snapshotRenderer

	// readFile is swappable for tests that need to simulate read failures.
	readFile func(string) ([]byte, error)
}

// NewEmbedder creates an Embedder with default configuration.
// Use options to customize behavior (e.g., WithSearchDirs, WithTimeout).
func NewEmbedder(opts ...Option) (*Embedder, error) {
	e := &Embedder{
		cfg: embedderConfig{
			searchDirs: DefaultSearchDirs(),
			timeout:    defaultTimeout,
		},
		animator: &pipeline.PlotlyAnimationRewrite{},
		stripper: &pipeline.DimensionStrip{},
		injector: &pipeline.CSSInjection{},
		wrapper:  &pipeline.FragmentWrap{},
		readFile: os.ReadFile,
	}

	for _, opt := range opts {
		opt(e)
	}

	resolver, err := assets.NewResolver(e.cfg.searchDirs...)
	if err != nil {
		return nil, convertAssetError(err)
	}
	e.resolver = resolver

	// Browser launch is lazy; constructing the renderer costs nothing.
	if e.renderer == nil {
		e.renderer = newRodRenderer(e.cfg.timeout)
	}

	return e, nil
}

// Resolve locates a chart asset without embedding it.
// Returns the first existing path, or an error wrapping ErrAssetNotFound
// naming only the bare filename.
func (e *Embedder) Resolve(requested string) (string, error) {
	path, err := e.resolver.Resolve(requested)
	if err != nil {
		return "", convertAssetError(err)
	}
	return path, nil
}

// SniffKind resolves a chart and classifies it by content without running the
// transform pipeline. Hosts use it to apply kind-dependent display rules,
// like fragments never scrolling, before the chart document itself is
// requested.
func (e *Embedder) SniffKind(requested string) (AssetKind, error) {
	path, err := e.Resolve(requested)
	if err != nil {
		return KindAuto, err
	}
	raw, err := e.readFile(path) // #nosec G304 -- path produced by the resolver
	if err != nil {
		return KindAuto, wrapError(ErrAssetRead, fmt.Errorf("reading %q: %w", filepath.Base(path), err))
	}
	return sniffKind(string(raw)), nil
}

// Embed resolves, transforms, and packages a chart for sandboxed display.
// The asset kind (document vs. fragment) is sniffed from the content.
//
// A missing asset short-circuits before any read with ErrAssetNotFound; read
// failures surface as ErrAssetRead. A failed animation rewrite is silent: the
// chart renders at its exported speed instead.
func (e *Embedder) Embed(ctx context.Context, requested string, cfg RenderConfig) (*EmbedResult, error) {
	return e.embed(ctx, requested, KindAuto, cfg)
}

// EmbedWithKind is Embed with the content sniff overridden, for callers that
// know what the export is (deck entries can pin a kind).
func (e *Embedder) EmbedWithKind(ctx context.Context, requested string, kind AssetKind, cfg RenderConfig) (*EmbedResult, error) {
	return e.embed(ctx, requested, kind, cfg)
}

// embed runs the pipeline. Recovers from internal panics so one malformed
// export never takes down the caller's page.
func (e *Embedder) embed(ctx context.Context, requested string, kind AssetKind, cfg RenderConfig) (result *EmbedResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	path, err := e.Resolve(requested)
	if err != nil {
		return nil, err
	}

	raw, err := e.readFile(path) // #nosec G304 -- path produced by the resolver
	if err != nil {
		return nil, wrapError(ErrAssetRead, fmt.Errorf("reading %q: %w", filepath.Base(path), err))
	}
	content := string(raw)

	if kind == KindAuto {
		kind = sniffKind(content)
	}

	css := pipeline.BuildResponsiveCSS(cfg.Height, cfg.Width)

	if kind == KindFragment {
		content = e.stripper.StripInlineStyles(ctx, content)
		content = e.stripper.StripSVGAttrs(ctx, content)
		doc := e.wrapper.Wrap(ctx, content, css)
		// Fragments never scroll, regardless of configuration.
		return &EmbedResult{HTML: doc, Height: cfg.Height, Width: cfg.Width, Scrolling: false}, nil
	}

	if isAnimatedName(path) {
		content = e.animator.Rewrite(ctx, content, cfg.frameDuration())
	}
	content = e.stripper.StripSVGAttrs(ctx, content)
	content = e.injector.InjectCSS(ctx, content, css)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &EmbedResult{HTML: content, Height: cfg.Height, Width: cfg.Width, Scrolling: cfg.Scrolling}, nil
}

// isAnimatedName reports whether the filename signals an animated export.
func isAnimatedName(path string) bool {
	return strings.Contains(strings.ToLower(filepath.Base(path)), animatedMarker)
}

// sniffKind classifies an export by content: a document marker in the head of
// the file means a standalone document, anything else is a fragment.
func sniffKind(content string) AssetKind {
	head := content
	if len(head) > kindSniffLimit {
		head = head[:kindSniffLimit]
	}
	lower := strings.ToLower(head)
	if strings.Contains(lower, "<html") || strings.Contains(lower, "<!doctype") {
		return KindDocument
	}
	return KindFragment
}

// convertAssetError maps internal asset errors to public sentinels.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrNotFound):
		return wrapError(ErrAssetNotFound, err)
	case errors.Is(err, assets.ErrInvalidSearchPath):
		return wrapError(ErrInvalidSearchPath, err)
	default:
		return err
	}
}
