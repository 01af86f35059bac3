package scrape

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// fetchesTotal counts fetch attempts per strategy, so the balance between
// plain HTTP and browser rendering shows up on /metrics.
var fetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "scraper_fetches_total",
	Help: "Fetch attempts by strategy and result.",
}, []string{"strategy", "result"})
