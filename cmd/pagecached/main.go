package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/onnwee/cachetrace/internal/api"
	"github.com/onnwee/cachetrace/internal/config"
	"github.com/onnwee/cachetrace/internal/errorreporting"
	"github.com/onnwee/cachetrace/internal/logger"
	"github.com/onnwee/cachetrace/internal/tracing"
	"github.com/onnwee/cachetrace/pkg/store"
	"github.com/onnwee/cachetrace/pkg/webcache"
)

func main() {
	// Missing .env is fine; system env applies.
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.LogLevel)
	logger.Info("initializing pagecached", "listen_addr", cfg.ListenAddr, "cache_ttl", cfg.CacheTTL)

	if err := errorreporting.Init(cfg.SentryEnvironment); err != nil {
		logger.Warn("failed to initialize error reporting", "error", err)
	} else if errorreporting.IsSentryEnabled() {
		logger.Info("error reporting initialized", "environment", cfg.SentryEnvironment)
		defer errorreporting.Flush(2 * time.Second)
	}

	shutdownTracing, err := tracing.Init("cachetrace-pagecached")
	if err != nil {
		logger.Warn("failed to initialize tracing", "error", err)
	} else if cfg.OTELEnabled {
		logger.Info("tracing initialized", "endpoint", cfg.OTELEndpoint)
		defer func() {
			if err := shutdownTracing(context.Background()); err != nil {
				logger.Error("failed to shutdown tracer", "error", err)
			}
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := store.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Error("failed to connect to redis", "addr", cfg.RedisAddr, "error", err)
		os.Exit(1)
	}
	defer st.Close()

	pages := webcache.NewPageCache(st, webcache.NewHTTPFetcher())
	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: api.NewRouter(pages, st),
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("received shutdown signal")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "error", err)
		}
		cancel()
	}()

	logger.Info("pagecached listening", "addr", cfg.ListenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", "error", err)
		errorreporting.CaptureError(err)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("pagecached stopped")
}
