package cache

import (
	"context"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/nao1215/wordscope/internal/fetcher"
)

// Source fetches the region texts of a page.
type Source interface {
	Fetch(ctx context.Context, url string) (*fetcher.Document, error)
}

// CachedSource serves documents from a Store and falls back to a Source
// on a miss. Concurrent misses for the same URL share one fetch.
type CachedSource struct {
	store  *Store
	source Source
	group  singleflight.Group
	logger *slog.Logger
}

// NewCachedSource puts store in front of source.
func NewCachedSource(store *Store, source Source, logger *slog.Logger) *CachedSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedSource{
		store:  store,
		source: source,
		logger: logger,
	}
}

// Fetch returns the cached document for url, fetching and storing it on a miss.
// Cache read and write failures are logged and do not fail the fetch.
func (c *CachedSource) Fetch(ctx context.Context, url string) (*fetcher.Document, error) {
	doc, err := c.store.Get(ctx, url)
	if err != nil {
		c.logger.Warn("cache lookup failed", "url", url, "error", err)
	}
	if doc != nil {
		c.logger.Debug("cache hit", "url", url)
		return doc, nil
	}

	// The shared fetch outlives any single caller; the source applies its
	// own timeout.
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(url, func() (any, error) {
		doc, err := c.source.Fetch(fetchCtx, url)
		if err != nil {
			return nil, err
		}
		if err := c.store.Put(fetchCtx, doc); err != nil {
			c.logger.Warn("cache store failed", "url", url, "error", err)
		}
		return doc, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}

	if res.Shared {
		c.logger.Debug("shared in-flight fetch", "url", url)
	}
	// Callers sharing a fetch each get their own copy.
	copied := *res.Val.(*fetcher.Document) //nolint:forcetypeassert // only *fetcher.Document is returned above
	return &copied, nil
}
