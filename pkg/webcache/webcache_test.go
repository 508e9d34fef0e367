package webcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/onnwee/cachetrace/pkg/store"
)

// stubFetcher counts invocations and returns canned content or an error.
type stubFetcher struct {
	calls   int
	content string
	err     error
}

func (s *stubFetcher) Fetch(ctx context.Context, url string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.content, nil
}

func TestGet_CachesWithinTTL(t *testing.T) {
	st := store.NewMemory()
	fetcher := &stubFetcher{content: "<html>hello</html>"}
	p := NewPageCache(st, fetcher, WithTTL(10*time.Second))
	ctx := context.Background()
	const url = "http://example.test/a"

	first, err := p.Get(ctx, url)
	if err != nil {
		t.Fatalf("first Get failed: %v", err)
	}
	second, err := p.Get(ctx, url)
	if err != nil {
		t.Fatalf("second Get failed: %v", err)
	}

	if first != fetcher.content || second != first {
		t.Errorf("expected identical cached content, got %q then %q", first, second)
	}
	if fetcher.calls != 1 {
		t.Errorf("expected 1 fetch within TTL, got %d", fetcher.calls)
	}

	count, err := p.Count(ctx, url)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected access count 2, got %d", count)
	}
}

func TestGet_RefetchesAfterTTL(t *testing.T) {
	st := store.NewMemory()
	fetcher := &stubFetcher{content: "body"}
	p := NewPageCache(st, fetcher, WithTTL(50*time.Millisecond))
	ctx := context.Background()
	const url = "http://example.test/b"

	if _, err := p.Get(ctx, url); err != nil {
		t.Fatalf("first Get failed: %v", err)
	}

	time.Sleep(80 * time.Millisecond)

	if _, err := p.Get(ctx, url); err != nil {
		t.Fatalf("second Get failed: %v", err)
	}
	if fetcher.calls != 2 {
		t.Errorf("expected refetch after TTL, got %d fetches", fetcher.calls)
	}
}

func TestGet_FetchFailurePropagates(t *testing.T) {
	st := store.NewMemory()
	wantErr := errors.New("origin unreachable")
	fetcher := &stubFetcher{err: wantErr}
	p := NewPageCache(st, fetcher, WithTTL(10*time.Second))
	ctx := context.Background()
	const url = "http://example.test/down"

	if _, err := p.Get(ctx, url); !errors.Is(err, wantErr) {
		t.Fatalf("expected fetch error, got %v", err)
	}

	// Nothing must be cached: a later call tries the origin again.
	fetcher.err = nil
	fetcher.content = "recovered"
	got, err := p.Get(ctx, url)
	if err != nil {
		t.Fatalf("recovery Get failed: %v", err)
	}
	if got != "recovered" {
		t.Errorf("expected fresh content after failure, got %q", got)
	}
	if fetcher.calls != 2 {
		t.Errorf("expected 2 fetch attempts, got %d", fetcher.calls)
	}

	// Failed calls still count.
	count, err := p.Count(ctx, url)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected access count 2, got %d", count)
	}
}

func TestGet_DistinctURLsAreIndependent(t *testing.T) {
	st := store.NewMemory()
	fetcher := &stubFetcher{content: "shared"}
	p := NewPageCache(st, fetcher, WithTTL(10*time.Second))
	ctx := context.Background()

	if _, err := p.Get(ctx, "http://example.test/x"); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if _, err := p.Get(ctx, "http://example.test/y"); err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if fetcher.calls != 2 {
		t.Errorf("distinct URLs must each fetch, got %d calls", fetcher.calls)
	}
	for _, url := range []string{"http://example.test/x", "http://example.test/y"} {
		count, err := p.Count(ctx, url)
		if err != nil || count != 1 {
			t.Errorf("Count(%s) = (%d, %v), want (1, nil)", url, count, err)
		}
	}
}

func TestCount_NeverRequested(t *testing.T) {
	p := NewPageCache(store.NewMemory(), &stubFetcher{}, WithTTL(time.Second))

	count, err := p.Count(context.Background(), "http://example.test/unseen")
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 for unseen URL, got %d", count)
	}
}

func TestGet_StoreUnavailablePropagates(t *testing.T) {
	p := NewPageCache(&downStore{}, &stubFetcher{content: "x"}, WithTTL(time.Second))

	if _, err := p.Get(context.Background(), "http://example.test/a"); err == nil {
		t.Fatal("expected error when store is unavailable")
	}
}

// downStore fails every operation.
type downStore struct{}

var errDown = errors.New("store unavailable")

func (d *downStore) Set(ctx context.Context, key string, value any) error { return errDown }
func (d *downStore) Get(ctx context.Context, key string) ([]byte, error)  { return nil, errDown }
func (d *downStore) Incr(ctx context.Context, key string) (int64, error)  { return 0, errDown }
func (d *downStore) PushList(ctx context.Context, key string, value string) error {
	return errDown
}
func (d *downStore) ListRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	return nil, errDown
}
func (d *downStore) SetWithTTL(ctx context.Context, key string, value any, ttl time.Duration) error {
	return errDown
}
func (d *downStore) Ping(ctx context.Context) error { return errDown }
