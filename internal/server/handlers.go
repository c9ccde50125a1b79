package server

import (
	"embed"
	"errors"
	"fmt"
	"html"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avelin/chartdeck"
	"github.com/avelin/chartdeck/internal/deck"
)

//go:embed templates/*.html
var templates embed.FS

// sectionView is the template model for one dashboard page.
type sectionView struct {
	DeckTitle string
	Subtitle  template.HTML
	Nav       []navItem
	Active    string
	Title     string
	Intro     template.HTML
	Charts    []chartView
}

type navItem struct {
	Slug  string
	Title string
}

// chartView renders as exactly one of: an iframe (FrameSrc), a static image
// (ImageSrc), or an inline warning (Warning).
type chartView struct {
	Title     string
	Caption   template.HTML
	FrameSrc  string
	ImageSrc  string
	Warning   string
	Height    int
	Width     int
	Scrolling bool
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if len(s.deck.Sections) == 0 {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/sections/"+s.deck.Sections[0].Slug, http.StatusFound)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleSection(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	section, ok := s.deck.Section(slug)
	if !ok {
		http.NotFound(w, r)
		return
	}

	view, err := s.buildSectionView(section)
	if err != nil {
		s.log.Error().Err(err).Str("section", slug).Msg("building section page")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.pages.ExecuteTemplate(w, "section.html", view); err != nil {
		s.log.Error().Err(err).Str("section", slug).Msg("rendering section page")
	}
}

// buildSectionView assembles the page model. Chart assets are re-resolved on
// every request so exports dropped into a search directory show up without a
// restart; a missing asset becomes an inline warning, never a failed page.
func (s *Server) buildSectionView(section *deck.Section) (*sectionView, error) {
	subtitle, err := s.markdown.Render(s.deck.Subtitle)
	if err != nil {
		return nil, err
	}
	intro, err := s.markdown.Render(section.Intro)
	if err != nil {
		return nil, err
	}

	view := &sectionView{
		DeckTitle: s.deck.Title,
		Subtitle:  subtitle,
		Active:    section.Slug,
		Title:     section.Title,
		Intro:     intro,
	}
	for _, sec := range s.deck.Sections {
		view.Nav = append(view.Nav, navItem{Slug: sec.Slug, Title: sec.Title})
	}

	for _, c := range section.Charts {
		cv := chartView{
			Title:  c.Title,
			Height: s.chartHeight(&c),
			Width:  s.chartWidth(&c),
		}
		if cv.Caption, err = s.markdown.Render(c.Caption); err != nil {
			return nil, err
		}

		if _, err := s.embedder.Resolve(c.File); err != nil {
			// Warning names only the bare filename, per the resolver contract.
			cv.Warning = fmt.Sprintf("Plot not found: %s. Ensure it has been exported to an asset directory.", c.File)
			s.log.Warn().Str("file", c.File).Str("section", section.Slug).Msg("chart asset missing")
		} else if c.Image {
			cv.ImageSrc = "/images/" + c.File
		} else {
			cv.FrameSrc = "/charts/" + c.File
			cv.Scrolling = s.allowScrolling(&c)
		}

		view.Charts = append(view.Charts, cv)
	}
	return view, nil
}

// handleChart serves the embedded (transformed) chart document an iframe
// loads. Only files referenced by a deck entry are served; everything else is
// a 404 regardless of what sits in the search directories.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	entry, ok := s.deck.ChartByFile(name)
	if !ok || entry.Image {
		writeWarningDocument(w, http.StatusNotFound, name)
		return
	}

	cfg := chartdeck.RenderConfig{
		Height:        s.chartHeight(entry),
		Width:         s.chartWidth(entry),
		Scrolling:     entry.Scrolling,
		FrameDuration: s.render.FrameDuration,
	}

	result, err := s.embedder.EmbedWithKind(r.Context(), name, kindOf(entry), cfg)
	switch {
	case errors.Is(err, chartdeck.ErrAssetNotFound):
		writeWarningDocument(w, http.StatusNotFound, name)
		return
	case err != nil:
		s.log.Error().Err(err).Str("file", name).Msg("embedding chart")
		writeErrorDocument(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(result.HTML))
}

// handleImage serves static image entries through the same resolver as charts.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	entry, ok := s.deck.ChartByFile(name)
	if !ok || !entry.Image {
		http.NotFound(w, r)
		return
	}

	path, err := s.embedder.Resolve(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, path)
}

// chartHeight resolves an entry's height against the configured default.
func (s *Server) chartHeight(c *deck.Chart) int {
	if c.Height > 0 {
		return c.Height
	}
	if s.render.Height > 0 {
		return s.render.Height
	}
	return chartdeck.DefaultHeight
}

// chartWidth resolves an entry's width against the configured default.
// Zero stays zero: fluid is a valid default.
func (s *Server) chartWidth(c *deck.Chart) int {
	if c.Width > 0 {
		return c.Width
	}
	return s.render.Width
}

// allowScrolling reports whether the iframe for an entry may scroll.
// Fragments never scroll, including entries whose kind is sniffed rather than
// declared, so the frame attribute always matches what embedding returns for
// the same chart.
func (s *Server) allowScrolling(c *deck.Chart) bool {
	if !c.Scrolling {
		return false
	}
	kind := kindOf(c)
	if kind == chartdeck.KindAuto {
		sniffed, err := s.embedder.SniffKind(c.File)
		if err != nil {
			return false
		}
		kind = sniffed
	}
	return kind != chartdeck.KindFragment
}

// kindOf maps a deck entry's kind string to the embedder's enum.
func kindOf(c *deck.Chart) chartdeck.AssetKind {
	switch c.Kind {
	case deck.KindDocument:
		return chartdeck.KindDocument
	case deck.KindFragment:
		return chartdeck.KindFragment
	default:
		return chartdeck.KindAuto
	}
}

// writeWarningDocument emits the small document an iframe shows for a chart
// whose asset could not be found. Expected outcome, styled as a warning.
func writeWarningDocument(w http.ResponseWriter, status int, file string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, `<!DOCTYPE html><html><body style="margin:0;font-family:sans-serif">`+
		`<div style="padding:1rem;background:#fff7e0;color:#7a5c00">&#9888; Plot not found: <code>%s</code></div>`+
		`</body></html>`, html.EscapeString(file))
}

// writeErrorDocument emits the document shown for a read or transform failure.
func writeErrorDocument(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	fmt.Fprintf(w, `<!DOCTYPE html><html><body style="margin:0;font-family:sans-serif">`+
		`<div style="padding:1rem;background:#fdecec;color:#8a1f1f">Error reading chart: %s</div>`+
		`</body></html>`, html.EscapeString(err.Error()))
}
