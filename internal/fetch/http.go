package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/http/cookiejar"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	browser "github.com/EDDYCJY/fake-useragent"
	"github.com/go-resty/resty/v2"

	"github.com/xHishamSaeedx/tournify-deathmatch-scrape/internal/config"
)

// HTTPFetcher issues plain GET requests with a realistic desktop header set.
// It is the cheap strategy: fast, but the target page is client-rendered so
// it often yields an unrendered shell or a block page.
type HTTPFetcher struct {
	client     *resty.Client
	maxRetries int
	retryDelay time.Duration

	// userAgent supplies a fresh user agent per attempt.
	userAgent func() string
}

// NewHTTPFetcher builds the fetcher from the scraper configuration.
func NewHTTPFetcher(cfg config.ScraperConfig) *HTTPFetcher {
	client := resty.New()
	client.SetTimeout(cfg.Timeout)
	client.SetHeaders(config.DefaultRequestHeaders)

	jar, err := cookiejar.New(nil)
	if err == nil {
		client.SetCookieJar(jar)
	}
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	return &HTTPFetcher{
		client:     client,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		userAgent:  browser.Chrome,
	}
}

// Name implements Fetcher.
func (f *HTTPFetcher) Name() string { return "http" }

// Close implements Fetcher. The HTTP client holds no resources worth
// releasing.
func (f *HTTPFetcher) Close() error { return nil }

// Fetch retrieves the page, retrying up to the configured attempt count with
// a linear backoff of retryDelay × attempt between attempts. Any transport
// error or non-2xx status counts as a failed attempt; exhausting retries
// returns the last error.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		if attempt > 0 {
			wait := f.retryDelay * time.Duration(attempt)
			slog.Debug("retrying fetch",
				"url", url,
				"wait", wait,
				"attempt", attempt,
				"max_retries", f.maxRetries,
			)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(wait):
			}
		}

		res, err := f.client.R().
			SetContext(ctx).
			SetHeader("User-Agent", f.userAgent()).
			Get(url)
		if err != nil {
			lastErr = err
			continue
		}
		if res.IsError() {
			lastErr = fmt.Errorf("%w: %d", ErrBadStatus, res.StatusCode())
			continue
		}

		body := res.String()
		if strings.TrimSpace(body) == "" {
			lastErr = ErrEmptyBody
			continue
		}
		return body, nil
	}

	return "", fmt.Errorf("http fetch failed after %d attempts: %w", f.maxRetries+1, lastErr)
}
