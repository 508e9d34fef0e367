package webcache

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/onnwee/cachetrace/internal/config"
	"github.com/onnwee/cachetrace/internal/httpx"
	"github.com/onnwee/cachetrace/internal/metrics"
)

// Fetcher retrieves the content of a remote resource.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// HTTPFetcher fetches pages over HTTP with a bounded timeout, client-side
// rate limiting toward remote origins, and retry on 429/5xx responses.
type HTTPFetcher struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
}

// NewHTTPFetcher builds a fetcher from config.
func NewHTTPFetcher() *HTTPFetcher {
	cfg := config.Load()
	return &HTTPFetcher{
		client:    &http.Client{Timeout: cfg.HTTPTimeout},
		limiter:   rate.NewLimiter(rate.Limit(cfg.FetchRPS), cfg.FetchBurst),
		userAgent: cfg.UserAgent,
	}
}

// Fetch performs a GET against url and returns the body as text. Any
// response outside 2xx is an error; nothing is returned for the caller to
// mistake for content.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	start := time.Now()
	resp, err := httpx.DoWithRetry(ctx, f.client, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", f.userAgent)
		return req, nil
	}, func(ctx context.Context, attempt int) error {
		return f.limiter.Wait(ctx)
	})
	if err != nil {
		return "", fmt.Errorf("webcache: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	metrics.FetchDuration.Observe(time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("webcache: fetch %s: unexpected status %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("webcache: fetch %s: read body: %w", url, err)
	}
	return string(body), nil
}
