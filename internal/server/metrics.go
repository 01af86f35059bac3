package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/xHishamSaeedx/tournify-deathmatch-scrape/pkg/models"
)

var (
	scrapesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scraper_scrapes_total",
		Help: "Scrape attempts by result.",
	}, []string{"result"})

	scrapeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "scraper_scrape_duration_seconds",
		Help:    "End-to-end scrape duration in seconds.",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
	})

	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scraper_http_requests_total",
		Help: "HTTP requests by endpoint, method and status.",
	}, []string{"endpoint", "method", "status"})
)

func recordOutcome(outcome models.ScrapeOutcome) {
	result := "success"
	if !outcome.Success {
		result = "failure"
	}
	scrapesTotal.WithLabelValues(result).Inc()
	scrapeDuration.Observe(outcome.ProcessingTime)
}
