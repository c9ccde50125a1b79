// Package chartdeck embeds precomputed chart exports into sandboxed viewports.
//
// Charts are produced upstream by a charting pipeline and saved as HTML
// documents (interactive Plotly exports) or bare markup fragments (typically
// geographic maps). chartdeck does not generate charts; it locates a saved
// export, post-processes it for responsive display, and returns markup ready
// for an isolated iframe.
//
// # Quick Start
//
// Create an embedder with the directories to search, then embed by filename:
//
//	emb, err := chartdeck.NewEmbedder(
//	    chartdeck.WithSearchDirs(".", "Figs", "Time Series", "Maps"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer emb.Close()
//
//	result, err := emb.Embed(ctx, "overall_review_trend_animated.html", chartdeck.RenderConfig{
//	    Height: 600,
//	})
//	if errors.Is(err, chartdeck.ErrAssetNotFound) {
//	    // expected outcome, show a warning instead of the chart
//	}
//
// # Embedding Pipeline
//
// Each embed call runs these stages:
//
//  1. Resolve the filename across the configured directories (first hit wins).
//  2. Read the export and sniff its kind (full document vs. fragment).
//  3. For animated exports, rewrite the frame and transition durations inside
//     the Plotly layout object (best effort, silently skipped on mismatch).
//  4. Strip hard-coded pixel dimensions that defeat responsive scaling.
//  5. Inject a responsive style block, or wrap fragments in a document shell.
//
// The source file is never modified; all transforms operate on an in-memory
// copy. A failure while embedding one chart is always local to that chart.
//
// # Snapshots
//
// Snapshot renders an embedded chart to PNG with headless Chrome. The go-rod
// library downloads a managed Chromium on first run; set ROD_BROWSER_BIN to
// use a pre-installed binary in containers and CI.
package chartdeck
