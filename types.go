package chartdeck

import (
	"fmt"
	"time"
)

// Render defaults.
const (
	// DefaultHeight is the viewport height used when a deck entry does not
	// specify one.
	DefaultHeight = 600

	// DefaultFrameDuration is the animation frame-advance duration in
	// milliseconds applied when RenderConfig.FrameDuration is zero.
	DefaultFrameDuration = 50
)

// AssetKind classifies a chart export.
type AssetKind int

const (
	// KindAuto sniffs the kind from the export's content: anything carrying
	// an <html> or <!doctype> marker is a document, everything else a fragment.
	KindAuto AssetKind = iota

	// KindDocument is a complete standalone HTML document (head and body).
	KindDocument

	// KindFragment is bare chart markup with no document wrapper, typically a
	// geographic map export. Fragments get a document shell during embedding.
	KindFragment
)

// RenderConfig holds the per-call display options for one chart.
// These are the only recognized options; there is no dynamic key surface.
type RenderConfig struct {
	Height        int  // viewport height in pixels (required, > 0)
	Width         int  // viewport width in pixels (0 = unset, chart takes 100%)
	Scrolling     bool // permit scrolling inside the viewport (documents only)
	FrameDuration int  // animation frame duration in ms (0 = DefaultFrameDuration)
}

// Validate checks that render options are within bounds.
func (c RenderConfig) Validate() error {
	if c.Height <= 0 {
		return fmt.Errorf("%w: %d (must be positive)", ErrInvalidHeight, c.Height)
	}
	if c.Width < 0 {
		return fmt.Errorf("%w: %d (must not be negative)", ErrInvalidWidth, c.Width)
	}
	if c.FrameDuration < 0 {
		return fmt.Errorf("%w: %d (must not be negative)", ErrInvalidFrameDuration, c.FrameDuration)
	}
	return nil
}

// frameDuration resolves the effective frame duration in milliseconds.
func (c RenderConfig) frameDuration() int {
	if c.FrameDuration > 0 {
		return c.FrameDuration
	}
	return DefaultFrameDuration
}

// EmbedResult is a successfully transformed chart ready for sandboxed display.
// HTML is always a complete document; Height, Width and Scrolling are the
// viewport parameters the host should apply to the embedding frame.
type EmbedResult struct {
	HTML      string
	Height    int
	Width     int // 0 = no fixed width, frame should fill its container
	Scrolling bool
}

// Option configures an Embedder.
type Option func(*Embedder)

// embedderConfig holds internal configuration for Embedder.
type embedderConfig struct {
	searchDirs []string
	timeout    time.Duration
}

// defaultTimeout bounds snapshot rendering when no timeout is specified.
const defaultTimeout = 30 * time.Second

// DefaultSearchDirs returns the conventional locations the upstream charting
// pipeline saves exports to, in priority order.
func DefaultSearchDirs() []string {
	return []string{".", "Figs", "Time Series", "Maps"}
}

// WithSearchDirs sets the ordered list of directories probed when a requested
// path does not exist directly. Order encodes priority: the first directory
// holding the filename wins.
func WithSearchDirs(dirs ...string) Option {
	return func(e *Embedder) {
		e.cfg.searchDirs = dirs
	}
}

// WithTimeout sets the snapshot rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("chartdeck: WithTimeout duration must be positive")
	}
	return func(e *Embedder) {
		e.cfg.timeout = d
	}
}
