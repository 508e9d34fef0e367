package api

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/onnwee/cachetrace/internal/api/handlers"
	"github.com/onnwee/cachetrace/internal/middleware"
	"github.com/onnwee/cachetrace/pkg/store"
	"github.com/onnwee/cachetrace/pkg/webcache"
)

// NewRouter wires the pagecached HTTP surface.
func NewRouter(p *webcache.PageCache, st store.Store) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover)

	// Page cache
	r.HandleFunc("/v1/page", handlers.GetPage(p)).Methods("GET")
	r.HandleFunc("/v1/count", handlers.GetCount(p)).Methods("GET")

	// Operational endpoints
	r.HandleFunc("/healthz", handlers.Health(st)).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return r
}
