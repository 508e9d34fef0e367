package store

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"
)

// Memory is an in-process Store used by tests and local development. Expiry
// is lazy: expired entries are dropped when read, mirroring how the Redis
// TTL mechanism looks to a client.
type Memory struct {
	mu     sync.Mutex
	values map[string]memoryEntry
	lists  map[string][]string
}

// memoryEntry wraps stored bytes with an optional expiry time.
type memoryEntry struct {
	data      []byte
	expiresAt time.Time // zero means no expiry
}

func (e memoryEntry) expired() bool {
	return !e.expiresAt.IsZero() && time.Now().After(e.expiresAt)
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		values: make(map[string]memoryEntry),
		lists:  make(map[string][]string),
	}
}

func (m *Memory) Set(ctx context.Context, key string, value any) error {
	data, err := encodeValue(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = memoryEntry{data: data}
	return nil
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	if entry.expired() {
		delete(m.values, key)
		return nil, ErrNotFound
	}
	return entry.data, nil
}

func (m *Memory) Incr(ctx context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	if entry, ok := m.values[key]; ok && !entry.expired() {
		parsed, err := strconv.ParseInt(string(entry.data), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("store: incr %s: value is not an integer", key)
		}
		n = parsed
	}
	n++
	m.values[key] = memoryEntry{data: strconv.AppendInt(nil, n, 10)}
	return n, nil
}

func (m *Memory) PushList(ctx context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists[key] = append(m.lists[key], value)
	return nil
}

func (m *Memory) ListRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.lists[key]
	n := int64(len(list))
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if n == 0 || start > stop || start >= n {
		return nil, nil
	}
	out := make([]string, stop-start+1)
	copy(out, list[start:stop+1])
	return out, nil
}

func (m *Memory) SetWithTTL(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := encodeValue(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = memoryEntry{data: data, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (m *Memory) Ping(ctx context.Context) error {
	return nil
}
