package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Store metrics
	StoreOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cachetrace_store_ops_total",
			Help: "Total number of key-value store operations",
		},
		[]string{"op", "status"}, // op: set, get, incr, push, range, setex; status: success, miss, error
	)

	// Instrumented cache metrics
	InstrumentedCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cachetrace_instrumented_calls_total",
			Help: "Total number of instrumented cache operations recorded",
		},
		[]string{"operation"},
	)

	// Page cache metrics
	PageCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cachetrace_pagecache_hits_total",
			Help: "Total number of page cache hits",
		},
	)

	PageCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cachetrace_pagecache_misses_total",
			Help: "Total number of page cache misses",
		},
	)

	// Fetch metrics
	FetchHTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cachetrace_fetch_http_requests_total",
			Help: "Total number of HTTP requests made to remote origins",
		},
		[]string{"status"}, // status: success, retry, error
	)

	FetchHTTPRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cachetrace_fetch_http_retries_total",
			Help: "Total number of HTTP request retries",
		},
	)

	FetchRetryAfterWaits = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cachetrace_fetch_retry_after_wait_seconds",
			Help:    "Duration of Retry-After waits in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
	)

	FetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cachetrace_fetch_duration_seconds",
			Help:    "Duration of remote fetches in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)
