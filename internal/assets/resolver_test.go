package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeAsset creates a file under dir and returns its path.
func writeAsset(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("<html></html>"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewResolver(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		dirs    []string
		wantErr error
	}{
		{
			name: "valid directories",
			dirs: []string{".", "Figs", "Time Series"},
		},
		{
			name: "no directories",
			dirs: nil,
		},
		{
			name:    "empty entry",
			dirs:    []string{".", ""},
			wantErr: ErrInvalidSearchPath,
		},
		{
			name:    "whitespace entry",
			dirs:    []string{"   "},
			wantErr: ErrInvalidSearchPath,
		},
		{
			name:    "null byte",
			dirs:    []string{"Figs\x00"},
			wantErr: ErrInvalidSearchPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r, err := NewResolver(tt.dirs...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := len(r.SearchDirs()); got != len(tt.dirs) {
				t.Errorf("SearchDirs() has %d entries, want %d", got, len(tt.dirs))
			}
		})
	}
}

func TestResolveDirectPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeAsset(t, dir, "chart.html")

	r, err := NewResolver(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	got, err := r.Resolve(path)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got != path {
		t.Errorf("Resolve() = %q, want direct path %q", got, path)
	}
}

func TestResolveFallbackOrder(t *testing.T) {
	t.Parallel()

	primary := t.TempDir()
	secondary := t.TempDir()

	// Same name in both; the first configured directory must win.
	want := writeAsset(t, primary, "trend.html")
	writeAsset(t, secondary, "trend.html")

	r, err := NewResolver(primary, secondary)
	if err != nil {
		t.Fatal(err)
	}

	got, err := r.Resolve("trend.html")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got != want {
		t.Errorf("Resolve() = %q, want primary hit %q", got, want)
	}
}

func TestResolveBareNameFromLaterDirectory(t *testing.T) {
	t.Parallel()

	primary := t.TempDir()
	secondary := t.TempDir()
	want := writeAsset(t, secondary, "seasonal.html")

	r, err := NewResolver(primary, secondary)
	if err != nil {
		t.Fatal(err)
	}

	got, err := r.Resolve("seasonal.html")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got != want {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}
}

func TestResolveStripsRequestedDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	want := writeAsset(t, dir, "map.html")

	r, err := NewResolver(dir)
	if err != nil {
		t.Fatal(err)
	}

	// The requested path's directory does not exist; only its base name is
	// probed against the search directories.
	got, err := r.Resolve(filepath.Join("no-such-dir", "map.html"))
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got != want {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}
}

func TestResolveNotFound(t *testing.T) {
	t.Parallel()

	r, err := NewResolver(t.TempDir(), t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	_, err = r.Resolve(filepath.Join("some", "deep", "missing.html"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	if !strings.Contains(err.Error(), `"missing.html"`) {
		t.Errorf("error message should name the bare filename: %v", err)
	}
	if strings.Contains(err.Error(), "deep") {
		t.Errorf("error message should not leak the requested directory: %v", err)
	}
}

func TestResolveDirectoryIsNotAnAsset(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "chart.html"), 0o755); err != nil {
		t.Fatal(err)
	}

	r, err := NewResolver(dir)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := r.Resolve("chart.html"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound for directory match", err)
	}
}

func TestResolveEmptyName(t *testing.T) {
	t.Parallel()

	r, err := NewResolver(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := r.Resolve(""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestSearchDirsReturnsCopy(t *testing.T) {
	t.Parallel()

	r, err := NewResolver("Figs", "Time Series")
	if err != nil {
		t.Fatal(err)
	}

	dirs := r.SearchDirs()
	dirs[0] = "mutated"

	if got := r.SearchDirs()[0]; got != "Figs" {
		t.Errorf("internal search dirs mutated through returned slice: %q", got)
	}
}
