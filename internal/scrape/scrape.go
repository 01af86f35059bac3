// Package scrape drives a full scrape for one match URL: domain validation,
// the fetch strategy cascade, parsing and extraction, reported as a timed
// success/failure outcome. Nothing in this package propagates an error or a
// panic to its caller.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xHishamSaeedx/tournify-deathmatch-scrape/internal/extract"
	"github.com/xHishamSaeedx/tournify-deathmatch-scrape/internal/fetch"
	"github.com/xHishamSaeedx/tournify-deathmatch-scrape/internal/htmldoc"
	"github.com/xHishamSaeedx/tournify-deathmatch-scrape/pkg/models"
)

// MaxBatchSize caps ScrapeBatch input; oversize batches are rejected at the
// API boundary.
const MaxBatchSize = 10

var (
	// ErrInvalidURL indicates the URL is outside the supported source domain.
	ErrInvalidURL = errors.New("url outside the supported source domain")
	// ErrAllFetchersFailed indicates every fetch strategy was exhausted.
	ErrAllFetchersFailed = errors.New("all fetch strategies failed")
)

// Service scrapes match pages. One Service owns its fetchers; Close releases
// them.
type Service struct {
	baseURL  string
	fetchers []fetch.Fetcher
	now      extract.Clock
}

// Option configures a Service.
type Option func(*Service)

// WithClock injects the time source used for outcome timing and date
// fallbacks. Tests use this.
func WithClock(now extract.Clock) Option {
	return func(s *Service) { s.now = now }
}

// New builds a Service accepting only URLs under baseURL. Fetchers are tried
// in the order given; the first to produce usable markup wins.
func New(baseURL string, fetchers []fetch.Fetcher, opts ...Option) *Service {
	s := &Service{
		baseURL:  baseURL,
		fetchers: fetchers,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close releases every fetcher.
func (s *Service) Close() error {
	var errs []error
	for _, f := range s.fetchers {
		if err := f.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s fetcher: %w", f.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// ValidateURL reports whether the URL belongs to the supported source
// domain. The same check guards both the API boundary and the orchestrator
// itself.
func (s *Service) ValidateURL(matchURL string) error {
	if !strings.HasPrefix(matchURL, s.baseURL) {
		return fmt.Errorf("%w: only %s match pages are supported", ErrInvalidURL, s.baseURL)
	}
	return nil
}

// Scrape runs the full pipeline for one URL and returns a timed outcome. All
// failures, including panics from extraction, are converted into a
// non-success outcome carrying a human-readable message.
func (s *Service) Scrape(ctx context.Context, matchURL string) (outcome models.ScrapeOutcome) {
	start := s.now()
	defer func() {
		if r := recover(); r != nil {
			slog.Error("scrape panicked", "url", matchURL, "panic", r)
			outcome = s.failure(start, fmt.Sprintf("unexpected error: %v", r))
		}
	}()

	slog.Info("starting scrape", "url", matchURL)

	if err := s.ValidateURL(matchURL); err != nil {
		return s.failure(start, err.Error())
	}

	markup, err := s.fetchWithFallback(ctx, matchURL)
	if err != nil {
		return s.failure(start, fmt.Sprintf("failed to fetch match page: %v", err))
	}

	doc, err := htmldoc.Parse(markup)
	if err != nil {
		return s.failure(start, fmt.Sprintf("failed to parse match page: %v", err))
	}

	result, err := extract.Match(doc, matchURL, s.now)
	if err != nil {
		return s.failure(start, fmt.Sprintf("failed to parse match data: %v", err))
	}

	elapsed := s.now().Sub(start).Seconds()
	slog.Info("scrape succeeded",
		"url", matchURL,
		"match_id", result.MatchID,
		"players", len(result.Players),
		"elapsed", elapsed,
	)
	return models.ScrapeOutcome{
		Success:        true,
		MatchData:      result,
		ProcessingTime: elapsed,
	}
}

// ScrapeBatch processes URLs strictly one at a time; a failing URL is
// recorded as its own failure outcome and does not abort the batch.
func (s *Service) ScrapeBatch(ctx context.Context, urls []string) []models.ScrapeOutcome {
	outcomes := make([]models.ScrapeOutcome, 0, len(urls))
	for _, u := range urls {
		outcomes = append(outcomes, s.Scrape(ctx, u))
	}
	return outcomes
}

// fetchWithFallback tries each fetch strategy in order until one yields
// usable markup. A strategy failure is absorbed and logged, never surfaced
// unless every strategy is down.
func (s *Service) fetchWithFallback(ctx context.Context, url string) (string, error) {
	var lastErr error
	for _, f := range s.fetchers {
		markup, err := f.Fetch(ctx, url)
		if err != nil {
			fetchesTotal.WithLabelValues(f.Name(), "failure").Inc()
			slog.Warn("fetch strategy failed", "strategy", f.Name(), "url", url, "err", err)
			lastErr = err
			continue
		}
		if strings.TrimSpace(markup) == "" {
			fetchesTotal.WithLabelValues(f.Name(), "failure").Inc()
			slog.Warn("fetch strategy returned no markup", "strategy", f.Name(), "url", url)
			lastErr = fetch.ErrEmptyBody
			continue
		}
		fetchesTotal.WithLabelValues(f.Name(), "success").Inc()
		slog.Debug("fetched page", "strategy", f.Name(), "url", url, "bytes", len(markup))
		return markup, nil
	}

	if lastErr != nil {
		return "", fmt.Errorf("%w: %v", ErrAllFetchersFailed, lastErr)
	}
	return "", ErrAllFetchersFailed
}

func (s *Service) failure(start time.Time, message string) models.ScrapeOutcome {
	slog.Warn("scrape failed", "reason", message)
	return models.ScrapeOutcome{
		Success:        false,
		ErrorMessage:   message,
		ProcessingTime: s.now().Sub(start).Seconds(),
	}
}
