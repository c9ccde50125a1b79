package assets

import "errors"

// Sentinel errors for asset resolution.
var (
	// ErrNotFound indicates the asset exists in none of the candidate
	// directories. The error message carries only the bare filename so
	// user-facing warnings stay concise.
	ErrNotFound = errors.New("asset not found")

	// ErrInvalidSearchPath indicates a configured search directory is unusable.
	ErrInvalidSearchPath = errors.New("invalid search path")
)
