// Package webcache memoizes fetched page content in the external key-value
// store under a fixed TTL and counts accesses per URL. Expiry is enforced by
// the store's native TTL mechanism; there is no background sweep.
package webcache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/onnwee/cachetrace/internal/config"
	"github.com/onnwee/cachetrace/internal/logger"
	"github.com/onnwee/cachetrace/internal/metrics"
	"github.com/onnwee/cachetrace/internal/tracing"
	"github.com/onnwee/cachetrace/pkg/store"
)

// Key prefixes in the external store. Cached content lives under
// "result:<url>" and the per-URL access counter under "count:<url>".
const (
	resultKeyPrefix = "result:"
	countKeyPrefix  = "count:"
)

// PageCache serves page content from the store when an unexpired entry
// exists and falls back to the fetcher otherwise. Every Get increments the
// URL's access counter, hit or miss.
type PageCache struct {
	store   store.Store
	fetcher Fetcher
	ttl     time.Duration
}

// Option configures a PageCache.
type Option func(*PageCache)

// WithTTL overrides the configured entry lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(p *PageCache) { p.ttl = ttl }
}

// NewPageCache builds a page cache on the given store and fetcher. The TTL
// defaults to the configured CACHE_TTL (10s unless overridden).
func NewPageCache(st store.Store, fetcher Fetcher, opts ...Option) *PageCache {
	p := &PageCache{
		store:   st,
		fetcher: fetcher,
		ttl:     config.Load().CacheTTL,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Get returns the content of url, from cache when an unexpired entry exists.
// On a miss the fetcher is invoked and its result cached with the configured
// TTL. Fetch failures propagate and are never cached; a failed fetch leaves
// the next call to try again. A failure to write the cache entry is logged
// and swallowed since the content was already obtained.
func (p *PageCache) Get(ctx context.Context, url string) (string, error) {
	ctx, span := tracing.StartSpan(ctx, "webcache.Get")
	defer span.End()

	if _, err := p.store.Incr(ctx, countKeyPrefix+url); err != nil {
		return "", err
	}

	data, err := p.store.Get(ctx, resultKeyPrefix+url)
	if err == nil {
		metrics.PageCacheHits.Inc()
		return string(data), nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return "", err
	}
	metrics.PageCacheMisses.Inc()

	content, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}

	if err := p.store.SetWithTTL(ctx, resultKeyPrefix+url, content, p.ttl); err != nil {
		logger.WithComponent("webcache").Warn("failed to cache fetched content", "url", url, "error", err)
	}
	return content, nil
}

// Count returns how many times url has been requested through this cache,
// hits and misses alike. A URL never requested counts zero.
func (p *PageCache) Count(ctx context.Context, url string) (int64, error) {
	data, err := p.store.Get(ctx, countKeyPrefix+url)
	if errors.Is(err, store.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("webcache: access counter for %s is not an integer: %w", url, err)
	}
	return n, nil
}
