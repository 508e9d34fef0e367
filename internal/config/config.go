package config

import (
	"os"
	"strings"
	"time"

	"github.com/onnwee/cachetrace/internal/utils"
)

// Config holds application configuration derived from environment variables.
type Config struct {
	// Redis connection settings
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// Fetch cache settings
	CacheTTL  time.Duration // TTL for cached page content
	UserAgent string
	// HTTP client settings
	HTTPTimeout    time.Duration
	HTTPMaxRetries int
	HTTPRetryBase  time.Duration
	LogHTTPRetries bool
	// Outbound fetch rate limiting
	FetchRPS   float64 // requests per second to remote origins
	FetchBurst int     // burst size for the fetch rate limit
	// pagecached server settings
	ListenAddr string
	// Observability settings
	LogLevel          string  // log level: debug, info, warn, error
	OTELEnabled       bool    // enable OpenTelemetry tracing
	OTELEndpoint      string  // OpenTelemetry collector endpoint
	OTELSampleRate    float64 // trace sampling rate (0.0 to 1.0)
	SentryDSN         string  // Sentry DSN for error reporting
	SentryEnvironment string  // Sentry environment (dev, staging, production)
	SentryRelease     string  // Sentry release version
}

var cached *Config

// Load reads env vars once and caches them.
func Load() *Config {
	if cached != nil {
		return cached
	}
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		addr = "localhost:6379"
	}
	ua := strings.TrimSpace(os.Getenv("FETCH_USER_AGENT"))
	if ua == "" {
		ua = "cachetrace/0.1"
	}
	cached = &Config{
		RedisAddr:      addr,
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        utils.GetEnvAsInt("REDIS_DB", 0),
		CacheTTL:       utils.GetEnvAsDuration("CACHE_TTL", 10*time.Second),
		UserAgent:      ua,
		HTTPTimeout:    time.Duration(utils.GetEnvAsInt("HTTP_TIMEOUT_MS", 5000)) * time.Millisecond,
		HTTPMaxRetries: utils.GetEnvAsInt("HTTP_MAX_RETRIES", 3),
		HTTPRetryBase:  time.Duration(utils.GetEnvAsInt("HTTP_RETRY_BASE_MS", 300)) * time.Millisecond,
		LogHTTPRetries: utils.GetEnvAsBool("LOG_HTTP_RETRIES", false),
		FetchRPS:       utils.GetEnvAsFloat("FETCH_RPS", 5.0),
		FetchBurst:     utils.GetEnvAsInt("FETCH_BURST_SIZE", 1),
		ListenAddr:     strings.TrimSpace(os.Getenv("LISTEN_ADDR")),
		LogLevel:       strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL"))),
		OTELEnabled:    utils.GetEnvAsBool("OTEL_ENABLED", false),
		OTELEndpoint:   strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
		OTELSampleRate: utils.GetEnvAsFloat("OTEL_TRACE_SAMPLE_RATE", 0.1),
		SentryDSN:      strings.TrimSpace(os.Getenv("SENTRY_DSN")),
		SentryRelease:  strings.TrimSpace(os.Getenv("SENTRY_RELEASE")),
	}
	if cached.ListenAddr == "" {
		cached.ListenAddr = ":8080"
	}
	if cached.LogLevel == "" {
		cached.LogLevel = "info"
	}
	cached.SentryEnvironment = strings.TrimSpace(os.Getenv("SENTRY_ENVIRONMENT"))
	if cached.SentryEnvironment == "" {
		if env := os.Getenv("ENV"); env != "" {
			cached.SentryEnvironment = env
		} else {
			cached.SentryEnvironment = "development"
		}
	}
	return cached
}

// ResetForTest clears cached config; for use in tests only.
func ResetForTest() { cached = nil }
