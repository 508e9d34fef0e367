// Package cache stores scalar values under generated keys and records a
// replayable call history for every store operation. All state lives in the
// external key-value store; a Cache is just a handle plus an operation name.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/onnwee/cachetrace/internal/tracing"
	"github.com/onnwee/cachetrace/pkg/store"
)

// DefaultOperation is the qualified name keying counters and histories when
// no explicit name is configured.
const DefaultOperation = "store"

// Cache persists scalar values under generated keys and instruments every
// Store call with a counter and an input/output history.
type Cache struct {
	store store.Store
	op    string
}

// Option configures a Cache.
type Option func(*Cache)

// WithOperationName overrides the qualified name used to key the call
// counter and history sequences. Callers sharing a store must pick distinct
// names to keep their histories apart.
func WithOperationName(name string) Option {
	return func(c *Cache) { c.op = name }
}

// New creates a Cache on the given store.
func New(st store.Store, opts ...Option) *Cache {
	c := &Cache{store: st, op: DefaultOperation}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OperationName returns the qualified name keying this cache's counter and
// history sequences.
func (c *Cache) OperationName() string {
	return c.op
}

// Store persists value under a freshly generated key and returns the key.
// Accepted value types are string, []byte, int, int64, and float64. Before
// returning, the call counter for the configured operation is incremented
// and the call's argument and result representations are appended to the
// history sequences. Store errors propagate.
func (c *Cache) Store(ctx context.Context, value any) (string, error) {
	ctx, span := tracing.StartSpan(ctx, "cache.Store")
	defer span.End()

	rec := recorder{store: c.store, op: c.op}
	return rec.call(ctx, formatArgs(value), func(ctx context.Context) (string, error) {
		key := uuid.NewString()
		if err := c.store.Set(ctx, key, value); err != nil {
			return "", err
		}
		return key, nil
	})
}

// Get returns the raw bytes stored under key. A missing key is reported as
// found == false, not as an error.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.store.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// GetString returns the value stored under key decoded as UTF-8 text.
func (c *Cache) GetString(ctx context.Context, key string) (string, bool, error) {
	return As(ctx, c, key, func(data []byte) (string, error) {
		return string(data), nil
	})
}

// GetInt64 returns the value stored under key parsed as a base-10 integer.
// A value that does not parse is an error, not an absence.
func (c *Cache) GetInt64(ctx context.Context, key string) (int64, bool, error) {
	return As(ctx, c, key, func(data []byte) (int64, error) {
		n, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("cache: decode %s as integer: %w", key, err)
		}
		return n, nil
	})
}

// As retrieves the value under key and applies decode to it. A missing key
// is (zero, false, nil); decode failures propagate as errors.
func As[T any](ctx context.Context, c *Cache, key string, decode func([]byte) (T, error)) (T, bool, error) {
	var zero T
	data, found, err := c.Get(ctx, key)
	if err != nil || !found {
		return zero, false, err
	}
	v, err := decode(data)
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}
