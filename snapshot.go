package chartdeck

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/avelin/chartdeck/internal/fileutil"
)

// snapshotRenderer abstracts chart screenshotting to enable testing without a
// browser.
type snapshotRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, width, height int) ([]byte, error)
	Close() error
}

// defaultSnapshotWidth is used when the render config has no fixed width.
const defaultSnapshotWidth = 1000

// Snapshot embeds a chart and renders it to a PNG with headless Chrome.
// The embedded document is written to a temp file, loaded in a browser page
// sized to the configured viewport, and captured after the page settles.
//
// Requires Chrome/Chromium; go-rod downloads a managed Chromium on first run.
func (e *Embedder) Snapshot(ctx context.Context, requested string, cfg RenderConfig) ([]byte, error) {
	result, err := e.Embed(ctx, requested, cfg)
	if err != nil {
		return nil, err
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(result.HTML, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshot, err)
	}
	defer cleanup()

	width := result.Width
	if width == 0 {
		width = defaultSnapshotWidth
	}

	return e.renderer.RenderFromFile(ctx, tmpPath, width, result.Height)
}

// Close releases browser resources held by Snapshot. Embed-only usage never
// launches a browser, so Close is then a no-op.
func (e *Embedder) Close() error {
	if e.renderer != nil {
		return e.renderer.Close()
	}
	return nil
}

// rodRenderer implements snapshotRenderer using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	browser *rod.Browser
	timeout time.Duration
}

// newRodRenderer creates a rodRenderer with the given timeout.
func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (r *rodRenderer) Close() error {
	if r.browser != nil {
		err := r.browser.Close()
		r.browser = nil
		return err
	}
	return nil
}

// RenderFromFile opens a local HTML file in headless Chrome and captures a PNG
// of the viewport. Returns explicit errors instead of panicking when browser
// operations fail.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, width, height int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             width,
		Height:            height,
		DeviceScaleFactor: 1,
	}); err != nil {
		return nil, fmt.Errorf("%w: setting viewport: %v", ErrPageCreate, err)
	}

	// Wait for page load with timeout from context or default
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bin, err := page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshot, err)
	}

	return bin, nil
}
