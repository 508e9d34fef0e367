// Command replay stores each of its arguments through the instrumented
// cache and prints the recorded call history for the operation.
//
//	replay -op store "first value" "second value"
//	replay -op store                # report only, stores nothing
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/onnwee/cachetrace/internal/config"
	"github.com/onnwee/cachetrace/internal/logger"
	"github.com/onnwee/cachetrace/pkg/cache"
	"github.com/onnwee/cachetrace/pkg/store"
)

func main() {
	op := flag.String("op", cache.DefaultOperation, "operation name keying the counter and history")
	flag.Parse()

	// Missing .env is fine; system env applies.
	_ = godotenv.Load()
	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	ctx := context.Background()
	st, err := store.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	c := cache.New(st, cache.WithOperationName(*op))
	for _, arg := range flag.Args() {
		key, err := c.Store(ctx, arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "replay: store %q: %v\n", arg, err)
			os.Exit(1)
		}
		logger.Debug("stored value", "key", key)
	}

	if err := c.Replay(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		os.Exit(1)
	}
}
