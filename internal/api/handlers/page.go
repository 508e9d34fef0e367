package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/onnwee/cachetrace/internal/logger"
	"github.com/onnwee/cachetrace/pkg/webcache"
)

// GetPage serves the content of the URL named by the "url" query parameter,
// from cache when possible. Fetch failures map to 502.
func GetPage(p *webcache.PageCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		target, ok := pageURL(w, r)
		if !ok {
			return
		}

		content, err := p.Get(r.Context(), target)
		if err != nil {
			logger.ErrorContext(r.Context(), "page fetch failed", "url", target, "error", err)
			http.Error(w, "failed to fetch page", http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(content))
	}
}

// GetCount reports how many times a URL has been requested through the cache.
func GetCount(p *webcache.PageCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		target, ok := pageURL(w, r)
		if !ok {
			return
		}

		count, err := p.Count(r.Context(), target)
		if err != nil {
			logger.ErrorContext(r.Context(), "count lookup failed", "url", target, "error", err)
			http.Error(w, "failed to read access count", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{"url": target, "count": count})
	}
}

// pageURL validates the "url" query parameter, writing a 400 when it is
// missing or not an absolute http(s) URL.
func pageURL(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := r.URL.Query().Get("url")
	if raw == "" {
		http.Error(w, "missing url parameter", http.StatusBadRequest)
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		http.Error(w, "url must be absolute http or https", http.StatusBadRequest)
		return "", false
	}
	return raw, true
}
