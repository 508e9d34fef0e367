// Package store abstracts the external key-value service that holds all
// cachetrace state: stored values, call counters, call histories, and
// expiring page content. Implementations must make each primitive atomic
// with respect to concurrent callers; cachetrace itself holds no locks.
package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrNotFound is returned by Get when a key has no value.
var ErrNotFound = errors.New("store: key not found")

// Store is the set of primitives cachetrace needs from the external
// key-value service. Every operation may block on network I/O.
type Store interface {
	// Set stores a scalar value under key with no expiry.
	Set(ctx context.Context, key string, value any) error

	// Get returns the raw bytes stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Incr atomically increments the integer at key, creating it at 0 first,
	// and returns the new value.
	Incr(ctx context.Context, key string) (int64, error)

	// PushList appends value to the tail of the list at key, creating the
	// list if needed.
	PushList(ctx context.Context, key string, value string) error

	// ListRange returns list elements between start and stop inclusive;
	// negative indexes count from the tail, so (0, -1) is the whole list.
	// A missing list is an empty result, not an error.
	ListRange(ctx context.Context, key string, start, stop int64) ([]string, error)

	// SetWithTTL stores a scalar value under key, expiring after ttl.
	SetWithTTL(ctx context.Context, key string, value any, ttl time.Duration) error

	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error
}

// encodeValue converts a supported scalar to its stored byte form, matching
// the wire encoding Redis applies to the same types.
func encodeValue(value any) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	case int:
		return strconv.AppendInt(nil, int64(v), 10), nil
	case int64:
		return strconv.AppendInt(nil, v, 10), nil
	case float64:
		return strconv.AppendFloat(nil, v, 'f', -1, 64), nil
	default:
		return nil, fmt.Errorf("store: unsupported value type %T", value)
	}
}
