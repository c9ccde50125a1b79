// Package deck defines the dashboard content model: named sections of
// precomputed charts with markdown prose between them. A deck is declarative
// data, not behavior; the server walks it to build pages and the embedder is
// what actually touches the chart files.
package deck

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/avelin/chartdeck/internal/yamlutil"
)

// Sentinel errors for deck operations.
var (
	ErrDeckNotFound  = errors.New("deck file not found")
	ErrDeckParse     = errors.New("failed to parse deck")
	ErrNoSections    = errors.New("deck has no sections")
	ErrInvalidSlug   = errors.New("invalid section slug")
	ErrDuplicateSlug = errors.New("duplicate section slug")
	ErrMissingFile   = errors.New("chart entry missing file")
	ErrInvalidKind   = errors.New("invalid chart kind")
)

// Recognized values for Chart.Kind. Empty means sniff from content.
const (
	KindDocument = "document"
	KindFragment = "fragment"
)

//go:embed decks/default.yaml
var embedded embed.FS

// slugPattern constrains slugs to URL-safe lowercase tokens.
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Deck is a complete dashboard definition.
type Deck struct {
	Title    string    `yaml:"title"`
	Subtitle string    `yaml:"subtitle"` // markdown
	Sections []Section `yaml:"sections"`
}

// Section is one navigable page of the dashboard.
type Section struct {
	Slug   string  `yaml:"slug"`
	Title  string  `yaml:"title"`
	Intro  string  `yaml:"intro"` // markdown
	Charts []Chart `yaml:"charts"`
}

// Chart is one display entry: an embedded HTML export or a static image.
type Chart struct {
	Title     string `yaml:"title"`
	Caption   string `yaml:"caption"` // markdown
	File      string `yaml:"file"`
	Height    int    `yaml:"height"`    // 0 = render default
	Width     int    `yaml:"width"`     // 0 = no fixed width
	Scrolling bool   `yaml:"scrolling"` // documents only; fragments never scroll
	Kind      string `yaml:"kind"`      // "", "document", "fragment"
	Image     bool   `yaml:"image"`     // static image served as-is, no embedding
}

// Load reads a deck definition from a YAML file.
func Load(path string) (*Deck, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDeckNotFound, path)
		}
		return nil, fmt.Errorf("reading deck: %w", err)
	}
	return parse(data)
}

// LoadDefault returns the built-in deck shipped with the binary.
func LoadDefault() (*Deck, error) {
	data, err := embedded.ReadFile("decks/default.yaml")
	if err != nil {
		// The file is embedded at build time; failure here is a packaging bug.
		panic("deck: embedded default deck missing: " + err.Error())
	}
	return parse(data)
}

func parse(data []byte) (*Deck, error) {
	var d Deck
	if err := yamlutil.UnmarshalStrict(data, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeckParse, err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate checks structural invariants: at least one section, unique
// URL-safe slugs, a file on every chart entry, and recognized kind values.
func (d *Deck) Validate() error {
	if len(d.Sections) == 0 {
		return ErrNoSections
	}

	seen := make(map[string]bool, len(d.Sections))
	for _, s := range d.Sections {
		if !slugPattern.MatchString(s.Slug) {
			return fmt.Errorf("%w: %q", ErrInvalidSlug, s.Slug)
		}
		if seen[s.Slug] {
			return fmt.Errorf("%w: %q", ErrDuplicateSlug, s.Slug)
		}
		seen[s.Slug] = true

		for _, c := range s.Charts {
			if c.File == "" {
				return fmt.Errorf("%w: section %q, entry %q", ErrMissingFile, s.Slug, c.Title)
			}
			switch c.Kind {
			case "", KindDocument, KindFragment:
			default:
				return fmt.Errorf("%w: %q (section %q)", ErrInvalidKind, c.Kind, s.Slug)
			}
		}
	}
	return nil
}

// Section returns the section with the given slug.
func (d *Deck) Section(slug string) (*Section, bool) {
	for i := range d.Sections {
		if d.Sections[i].Slug == slug {
			return &d.Sections[i], true
		}
	}
	return nil, false
}

// ChartByFile returns the first chart entry referencing the given filename.
// The server uses this to look up render settings for a chart request, and to
// refuse requests for files no deck entry references.
func (d *Deck) ChartByFile(file string) (*Chart, bool) {
	for i := range d.Sections {
		for j := range d.Sections[i].Charts {
			if d.Sections[i].Charts[j].File == file {
				return &d.Sections[i].Charts[j], true
			}
		}
	}
	return nil, false
}
