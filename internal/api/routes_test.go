package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/onnwee/cachetrace/internal/middleware"
	"github.com/onnwee/cachetrace/pkg/store"
	"github.com/onnwee/cachetrace/pkg/webcache"
)

type fixedFetcher struct{}

func (fixedFetcher) Fetch(ctx context.Context, url string) (string, error) {
	return "content", nil
}

func newTestRouter() http.Handler {
	st := store.NewMemory()
	p := webcache.NewPageCache(st, fixedFetcher{}, webcache.WithTTL(10*time.Second))
	return NewRouter(p, st)
}

func TestRouter_Routes(t *testing.T) {
	router := newTestRouter()

	cases := []struct {
		path string
		want int
	}{
		{"/v1/page?url=http://example.test/a", http.StatusOK},
		{"/v1/count?url=http://example.test/a", http.StatusOK},
		{"/healthz", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/nope", http.StatusNotFound},
	}
	for _, c := range cases {
		t.Run(c.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, c.path, nil))
			if rec.Code != c.want {
				t.Errorf("GET %s = %d, want %d", c.path, rec.Code, c.want)
			}
		})
	}
}

func TestRouter_AttachesRequestID(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("expected request ID header on response")
	}
}
