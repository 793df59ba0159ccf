package fetcher

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"

	"huskykennel-scraper/sources"
)

// Headless fetches a source by driving a real browser, for pages that only
// render their listings client-side. Each Fetch gets its own browser process
// and tab; both are torn down on every exit path so a stuck page cannot leak
// a Chrome instance into the rest of the run.
type Headless struct {
	timeout   time.Duration
	settle    time.Duration
	userAgent string
	chromeBin string
}

// NewHeadless creates a Headless fetcher. settle is the fixed wait after
// navigation for client-side rendering to finish; chromeBin may be empty to
// autodetect the browser binary.
func NewHeadless(timeout, settle time.Duration, userAgent, chromeBin string) *Headless {
	return &Headless{
		timeout:   timeout,
		settle:    settle,
		userAgent: userAgent,
		chromeBin: chromeBin,
	}
}

// Fetch navigates to the source endpoint, waits for the document to finish
// loading plus the settle delay, and returns the rendered DOM.
func (f *Headless) Fetch(ctx context.Context, src sources.SourceConfig) (*RawContent, error) {
	start := time.Now()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.UserAgent(f.userAgent),
	)
	if bin := f.binary(); bin != "" {
		opts = append(opts, chromedp.ExecPath(bin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	tabCtx, cancelTab := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelTab()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, f.timeout)
	defer cancelTimeout()

	// Navigate resolves on the load event; the readyState poll waits out
	// subresources still streaming in, and the settle sleep covers
	// client-side rendering that starts after load.
	var html string
	var ready bool
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(src.Endpoint),
		chromedp.Poll(`document.readyState === "complete"`, &ready,
			chromedp.WithPollingInterval(100*time.Millisecond)),
		chromedp.Sleep(f.settle),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &FetchError{Kind: KindTimeout, Err: err}
		}
		return nil, &FetchError{Kind: KindNetwork, Err: err}
	}

	return &RawContent{
		Body:       []byte(html),
		StatusCode: http.StatusOK,
		FetchedURL: src.Endpoint,
		Duration:   time.Since(start),
	}, nil
}

// binary locates the Chrome/Chromium binary, preferring the configured path.
func (f *Headless) binary() string {
	if f.chromeBin != "" {
		return f.chromeBin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
