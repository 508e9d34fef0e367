package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/onnwee/cachetrace/internal/metrics"
)

// Redis implements Store on a Redis server. The wrapped client is shared
// process-wide; callers own its lifecycle.
type Redis struct {
	client *redis.Client
}

// NewRedis wraps an existing go-redis client.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Connect dials Redis at addr and verifies the connection.
func Connect(ctx context.Context, addr, password string, db int) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("store: connect to redis at %s: %w", addr, err)
	}
	return NewRedis(client), nil
}

// Close releases the underlying client connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) Set(ctx context.Context, key string, value any) error {
	data, err := encodeValue(value)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		metrics.StoreOps.WithLabelValues("set", "error").Inc()
		return fmt.Errorf("store: set %s: %w", key, err)
	}
	metrics.StoreOps.WithLabelValues("set", "success").Inc()
	return nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.StoreOps.WithLabelValues("get", "miss").Inc()
		return nil, ErrNotFound
	}
	if err != nil {
		metrics.StoreOps.WithLabelValues("get", "error").Inc()
		return nil, fmt.Errorf("store: get %s: %w", key, err)
	}
	metrics.StoreOps.WithLabelValues("get", "success").Inc()
	return data, nil
}

func (r *Redis) Incr(ctx context.Context, key string) (int64, error) {
	n, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		metrics.StoreOps.WithLabelValues("incr", "error").Inc()
		return 0, fmt.Errorf("store: incr %s: %w", key, err)
	}
	metrics.StoreOps.WithLabelValues("incr", "success").Inc()
	return n, nil
}

func (r *Redis) PushList(ctx context.Context, key string, value string) error {
	if err := r.client.RPush(ctx, key, value).Err(); err != nil {
		metrics.StoreOps.WithLabelValues("push", "error").Inc()
		return fmt.Errorf("store: rpush %s: %w", key, err)
	}
	metrics.StoreOps.WithLabelValues("push", "success").Inc()
	return nil
}

func (r *Redis) ListRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	vals, err := r.client.LRange(ctx, key, start, stop).Result()
	if err != nil {
		metrics.StoreOps.WithLabelValues("range", "error").Inc()
		return nil, fmt.Errorf("store: lrange %s: %w", key, err)
	}
	metrics.StoreOps.WithLabelValues("range", "success").Inc()
	return vals, nil
}

func (r *Redis) SetWithTTL(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := encodeValue(value)
	if err != nil {
		return err
	}
	if err := r.client.SetEx(ctx, key, data, ttl).Err(); err != nil {
		metrics.StoreOps.WithLabelValues("setex", "error").Inc()
		return fmt.Errorf("store: setex %s: %w", key, err)
	}
	metrics.StoreOps.WithLabelValues("setex", "success").Inc()
	return nil
}

func (r *Redis) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("store: ping: %w", err)
	}
	return nil
}
