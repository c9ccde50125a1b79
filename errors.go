package chartdeck

import "errors"

// Sentinel errors for library operations.
var (
	// ErrAssetNotFound indicates the resolver exhausted every candidate
	// directory. This is an expected outcome, not an exceptional one; callers
	// should degrade gracefully (show a warning naming the bare filename).
	ErrAssetNotFound = errors.New("chart asset not found")

	// ErrAssetRead indicates an I/O failure while loading a resolved path.
	ErrAssetRead = errors.New("failed to read chart asset")

	// Render configuration validation errors.
	ErrInvalidHeight        = errors.New("invalid height")
	ErrInvalidWidth         = errors.New("invalid width")
	ErrInvalidFrameDuration = errors.New("invalid frame duration")

	// Embedder construction errors.
	ErrInvalidSearchPath = errors.New("invalid search path")

	// Snapshot rendering errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrSnapshot       = errors.New("snapshot capture failed")
)

// wrapError creates a new error that wraps the original with a public sentinel.
// The resulting error preserves the original message via Error() and supports
// errors.Is() matching against the public sentinel via Unwrap().
func wrapError(sentinel, original error) error {
	return &wrappedError{sentinel: sentinel, original: original}
}

type wrappedError struct {
	sentinel error
	original error
}

func (e *wrappedError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is() matching.
// Internal errors are not exposed since they live in internal/ packages.
func (e *wrappedError) Unwrap() error {
	return e.sentinel
}
