package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/xHishamSaeedx/tournify-deathmatch-scrape/internal/config"
)

// stealthScript hides the automation-detection property the target page
// checks for before serving real content.
const stealthScript = `Object.defineProperty(navigator, 'webdriver', {get: () => undefined})`

// BrowserFetcher renders pages in a headless browser. The browser process is
// expensive to start, so one instance is created per BrowserFetcher and
// reused across calls; each Fetch runs in a fresh tab. Fetches are serialized
// with an internal mutex since the underlying browser is a shared resource.
type BrowserFetcher struct {
	mu      sync.Mutex
	started bool

	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	// start boots the browser process on browserCtx. Tests stub it out.
	start func(ctx context.Context) error

	pageLoadTimeout time.Duration
	settleDelay     time.Duration
}

// NewBrowserFetcher prepares the headless browser with common automation
// fingerprints suppressed. The process itself launches on the first Fetch;
// Close must be called to release it.
func NewBrowserFetcher(cfg config.BrowserConfig) *BrowserFetcher {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(cfg.UserAgent),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	return &BrowserFetcher{
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		start: func(ctx context.Context) error {
			return chromedp.Run(ctx)
		},
		pageLoadTimeout: cfg.PageLoadTimeout,
		settleDelay:     cfg.SettleDelay,
	}
}

// ensureStarted boots the browser process on first use so every tab context
// created from browserCtx inherits the one running browser instead of
// spawning its own. The caller holds mu. A failed start leaves the fetcher
// unstarted so a later call can retry.
func (f *BrowserFetcher) ensureStarted() error {
	if f.started {
		return nil
	}
	if err := f.start(f.browserCtx); err != nil {
		return fmt.Errorf("start browser: %w", err)
	}
	f.started = true
	return nil
}

// Name implements Fetcher.
func (f *BrowserFetcher) Name() string { return "browser" }

// Close shuts the browser down. The fetcher is unusable afterwards.
func (f *BrowserFetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.browserCancel()
	f.allocCancel()
	return nil
}

// Fetch navigates to the URL in a new tab, waits for the document root
// (bounded by the page-load timeout), waits the fixed settle delay so
// client-side rendering can finish, then captures the rendered markup.
func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.ensureStarted(); err != nil {
		return "", fmt.Errorf("browser fetch failed: %w", err)
	}

	tabCtx, cancelTab := chromedp.NewContext(f.browserCtx)
	defer cancelTab()

	var html string
	errc := make(chan error, 1)
	go func() {
		errc <- f.render(tabCtx, url, &html)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return "", fmt.Errorf("browser fetch failed: %w", err)
		}
	case <-ctx.Done():
		cancelTab()
		<-errc
		return "", ctx.Err()
	}

	slog.Debug("browser fetch complete", "url", url, "bytes", len(html))
	return html, nil
}

func (f *BrowserFetcher) render(tabCtx context.Context, url string, html *string) error {
	return chromedp.Run(tabCtx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(stealthScript).Do(ctx)
			return err
		}),
		// The page-load timeout bounds only navigation and readiness. The
		// settle delay and capture below run on the tab context, so a load
		// that exhausts the timeout cannot tear the tab down mid-capture.
		chromedp.ActionFunc(func(ctx context.Context) error {
			loadCtx, cancel := context.WithTimeout(ctx, f.pageLoadTimeout)
			defer cancel()
			if err := chromedp.Navigate(url).Do(loadCtx); err != nil {
				return fmt.Errorf("navigate: %w", err)
			}
			if err := chromedp.WaitReady("html", chromedp.ByQuery).Do(loadCtx); err != nil {
				return fmt.Errorf("wait for document: %w", err)
			}
			return nil
		}),
		chromedp.Sleep(f.settleDelay),
		chromedp.OuterHTML("html", html, chromedp.ByQuery),
	)
}
