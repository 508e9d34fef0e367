package httpx

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/onnwee/cachetrace/internal/config"
	"github.com/onnwee/cachetrace/internal/logger"
	"github.com/onnwee/cachetrace/internal/metrics"
)

// PreAttempt lets callers run logic (e.g., rate limiting) before each try;
// return a context error to abort.
type PreAttempt func(ctx context.Context, attempt int) error

// DoWithRetry wraps an HTTP request with lightweight retries, honoring
// Retry-After on 429/5xx responses. Attempt count and base delay come from
// config. The request is rebuilt for every attempt so bodies stay fresh.
func DoWithRetry(ctx context.Context, client *http.Client, build func() (*http.Request, error), pre PreAttempt) (*http.Response, error) {
	cfg := config.Load()
	maxAttempts := cfg.HTTPMaxRetries
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	baseDelay := cfg.HTTPRetryBase

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if pre != nil {
			if err := pre(ctx, attempt); err != nil {
				return nil, err
			}
		}
		req, err := build()
		if err != nil {
			return nil, err
		}
		resp, err := client.Do(req)
		if err != nil {
			metrics.FetchHTTPRequests.WithLabelValues("error").Inc()
			if attempt == maxAttempts || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				if cfg.LogHTTPRetries {
					logger.Debug("httpx giving up", "attempt", attempt, "url", req.URL.String(), "error", err)
				}
				return nil, err
			}
			metrics.FetchHTTPRetries.Inc()
		} else {
			// Success unless 429 or 5xx.
			if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode < 500 {
				metrics.FetchHTTPRequests.WithLabelValues("success").Inc()
				return resp, nil
			}
			metrics.FetchHTTPRequests.WithLabelValues("retry").Inc()
			if attempt == maxAttempts {
				if cfg.LogHTTPRetries {
					logger.Debug("httpx giving up", "attempt", attempt, "url", req.URL.String(), "status", resp.StatusCode)
				}
				return resp, nil
			}
			if wait, ok := retryAfter(resp); ok {
				resp.Body.Close()
				metrics.FetchRetryAfterWaits.Observe(wait.Seconds())
				if cfg.LogHTTPRetries {
					logger.Debug("httpx honoring Retry-After", "attempt", attempt, "url", req.URL.String(), "wait", wait)
				}
				if err := sleep(ctx, wait); err != nil {
					return nil, err
				}
				continue
			}
			resp.Body.Close()
			metrics.FetchHTTPRetries.Inc()
		}
		// Backoff with jitter.
		jitter := time.Duration(rand.Intn(200)) * time.Millisecond
		delay := baseDelay*time.Duration(attempt) + jitter
		if cfg.LogHTTPRetries {
			logger.Debug("httpx backing off", "attempt", attempt, "delay", delay)
		}
		if err := sleep(ctx, delay); err != nil {
			return nil, err
		}
	}
	return nil, errors.New("exhausted retries")
}

// retryAfter parses a Retry-After header as either seconds or an HTTP date.
func retryAfter(resp *http.Response) (time.Duration, bool) {
	ra := resp.Header.Get("Retry-After")
	if ra == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(ra); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second, true
	}
	if t, err := http.ParseTime(ra); err == nil {
		if delta := time.Until(t); delta > 0 {
			return delta, true
		}
	}
	return 0, false
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
