// Package fetch provides the page acquisition strategies: a plain HTTP fetch
// and a browser-rendered fetch. Both satisfy the Fetcher interface so the
// orchestrator can cascade between them.
package fetch

import (
	"context"
	"errors"
)

// Fetcher abstracts a page acquisition strategy.
type Fetcher interface {
	// Fetch retrieves the raw page markup for a URL.
	Fetch(ctx context.Context, url string) (string, error)

	// Name identifies the strategy (e.g. "http", "browser") for logging.
	Name() string

	// Close releases any resources held by the strategy.
	Close() error
}

var (
	// ErrBadStatus indicates the server answered with a non-2xx status.
	ErrBadStatus = errors.New("unexpected response status")
	// ErrEmptyBody indicates the server answered with no usable markup.
	ErrEmptyBody = errors.New("empty response body")
)
