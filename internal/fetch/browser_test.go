package fetch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xHishamSaeedx/tournify-deathmatch-scrape/internal/config"
)

func newStubbedBrowserFetcher(start func(context.Context) error) *BrowserFetcher {
	f := NewBrowserFetcher(config.Default().Browser)
	f.start = start
	return f
}

func TestBrowserFetcherStartsProcessOnce(t *testing.T) {
	starts := 0
	f := newStubbedBrowserFetcher(func(context.Context) error {
		starts++
		return nil
	})
	defer f.Close()

	require.NoError(t, f.ensureStarted())
	require.NoError(t, f.ensureStarted())
	assert.Equal(t, 1, starts, "one browser process is shared across fetches")
}

func TestBrowserFetcherRetriesFailedStart(t *testing.T) {
	starts := 0
	f := newStubbedBrowserFetcher(func(context.Context) error {
		starts++
		return errors.New("no usable browser binary")
	})
	defer f.Close()

	_, err := f.Fetch(context.Background(), "https://tracker.gg/valorant/match/abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start browser")

	_, err = f.Fetch(context.Background(), "https://tracker.gg/valorant/match/abc")
	require.Error(t, err)
	assert.Equal(t, 2, starts, "a failed start is retried on the next fetch")
}
