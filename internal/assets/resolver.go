package assets

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/avelin/chartdeck/internal/fileutil"
)

// Resolver locates a named asset across an ordered list of candidate
// directories. Directory order is significant: it encodes priority, with the
// primary intended location first and increasingly generic locations after.
//
// Resolution is read-only; the Resolver never creates, mutates, or deletes
// anything on disk.
type Resolver struct {
	searchDirs []string
}

// NewResolver creates a Resolver over the given search directories.
// Directories are not required to exist; a missing directory simply never
// yields a hit. Returns ErrInvalidSearchPath for empty or malformed entries.
func NewResolver(searchDirs ...string) (*Resolver, error) {
	cleaned := make([]string, 0, len(searchDirs))
	for _, dir := range searchDirs {
		if strings.TrimSpace(dir) == "" {
			return nil, fmt.Errorf("%w: empty directory entry", ErrInvalidSearchPath)
		}
		if strings.ContainsRune(dir, '\x00') {
			return nil, fmt.Errorf("%w: %q contains null byte", ErrInvalidSearchPath, dir)
		}
		cleaned = append(cleaned, filepath.Clean(dir))
	}
	return &Resolver{searchDirs: cleaned}, nil
}

// Resolve returns the first existing location for the requested asset.
//
// The requested path is checked directly first. If absent, its bare filename
// is probed against each search directory in configured order. When every
// candidate misses, the returned error wraps ErrNotFound and names only the
// bare filename, never the full searched path list.
func (r *Resolver) Resolve(requested string) (string, error) {
	if requested == "" {
		return "", fmt.Errorf("%w: empty filename", ErrNotFound)
	}

	if fileutil.FileExists(requested) {
		return requested, nil
	}

	base := filepath.Base(requested)
	for _, dir := range r.searchDirs {
		candidate := filepath.Join(dir, base)
		if fileutil.FileExists(candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrNotFound, base)
}

// SearchDirs returns a copy of the configured search directories.
func (r *Resolver) SearchDirs() []string {
	dirs := make([]string, len(r.searchDirs))
	copy(dirs, r.searchDirs)
	return dirs
}
