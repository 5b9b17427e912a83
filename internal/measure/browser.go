package measure

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/jonathan/resume-fit/internal/logging"
	"github.com/jonathan/resume-fit/internal/rendering"
	"github.com/jonathan/resume-fit/internal/types"
)

// DefaultBrowserTimeout bounds a single browser measurement.
const DefaultBrowserTimeout = 30 * time.Second

// Browser renders the document to HTML and measures it in headless Chrome.
// Requires Chrome/Chromium to be installed on the system.
type Browser struct {
	// Timeout bounds one measurement; zero means DefaultBrowserTimeout.
	Timeout time.Duration
	// TemplatePath selects a custom HTML template; empty uses the embedded one.
	TemplatePath string
	// ExecPath points at a specific Chrome binary; empty lets chromedp find one.
	ExecPath string
}

// Measure renders doc and returns the height of the resume root element.
func (b Browser) Measure(ctx context.Context, doc *types.Document, layout rendering.Layout) (float64, error) {
	logger := logging.FromContext(ctx)

	html, err := b.render(doc, layout)
	if err != nil {
		return 0, &Error{Provider: "browser", Message: "failed to render document", Cause: err}
	}

	path, err := writeTempHTML(html)
	if err != nil {
		return 0, &Error{Provider: "browser", Message: "failed to write temporary HTML", Cause: err}
	}
	defer func() { _ = os.Remove(path) }()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(int(layout.Profile.PageWidthUnits), int(layout.Profile.PageHeightUnits)),
	)
	if b.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(b.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := b.Timeout
	if timeout <= 0 {
		timeout = DefaultBrowserTimeout
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	logger.Debug("Measuring in headless browser", "profile", layout.Profile.Name, "bytes", len(html))

	var height float64
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+path),
		chromedp.WaitReady("#"+rendering.RootID, chromedp.ByQuery),
		chromedp.Evaluate(fmt.Sprintf(`document.getElementById(%q).scrollHeight`, rendering.RootID), &height),
	)
	if err != nil {
		return 0, &Error{Provider: "browser", Message: "browser evaluation failed", Cause: err}
	}

	logger.Debug("Browser measurement complete", "height", height)
	return height, nil
}

func (b Browser) render(doc *types.Document, layout rendering.Layout) (string, error) {
	if b.TemplatePath != "" {
		return rendering.RenderHTMLFile(doc, layout, b.TemplatePath)
	}
	return rendering.RenderHTML(doc, layout)
}

// writeTempHTML writes HTML content to a temporary file and returns the path
func writeTempHTML(html string) (string, error) {
	tmpFile, err := os.CreateTemp("", "resume-*.html")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmpFile.WriteString(html); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpFile.Name())
		return "", fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		_ = os.Remove(tmpFile.Name())
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	return tmpFile.Name(), nil
}
