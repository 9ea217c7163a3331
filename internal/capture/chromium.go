// Package capture takes PNG snapshots of the rendered calendar page with a
// headless Chromium.
package capture

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/chromedp/chromedp"

	appLog "workdesk/internal/log"
)

const (
	DefaultWidth   = 1280
	DefaultHeight  = 1024
	DefaultTimeout = 30 * time.Second
)

// Options defines one snapshot.
type Options struct {
	// URL of the page, e.g. "http://127.0.0.1:8080/calendar?view=week".
	URL string
	// OutputPath is where the PNG is written.
	OutputPath string

	// Width and Height are the viewport size; zero uses the defaults.
	Width  int
	Height int

	// Timeout bounds the whole capture; zero uses DefaultTimeout.
	Timeout time.Duration
}

func (o *Options) normalize() error {
	if o.URL == "" {
		return fmt.Errorf("capture: URL is required")
	}
	if _, err := url.ParseRequestURI(o.URL); err != nil {
		return fmt.Errorf("capture: invalid URL: %w", err)
	}
	if o.OutputPath == "" {
		return fmt.Errorf("capture: OutputPath is required")
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	return nil
}

// CapturePNG navigates to opts.URL, waits until the page root reports
// data-ready="true", and writes a full-page screenshot to opts.OutputPath.
func CapturePNG(parentCtx context.Context, opts Options) error {
	if err := opts.normalize(); err != nil {
		return err
	}

	ctx, cancel := chromedp.NewContext(parentCtx)
	defer cancel()

	ctx, timeoutCancel := context.WithTimeout(ctx, opts.Timeout)
	defer timeoutCancel()

	var png []byte
	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(int64(opts.Width), int64(opts.Height)),
		chromedp.Navigate(opts.URL),
		chromedp.WaitVisible(`[data-ready="true"]`, chromedp.ByQuery),
		chromedp.FullScreenshot(&png, 100),
	}

	if err := chromedp.Run(ctx, tasks); err != nil {
		return fmt.Errorf("capture: chromedp run failed: %w", err)
	}

	if err := os.WriteFile(opts.OutputPath, png, 0o644); err != nil {
		return fmt.Errorf("capture: failed to write PNG: %w", err)
	}

	appLog.Info("calendar snapshot written", "path", opts.OutputPath, "bytes", len(png))
	return nil
}
