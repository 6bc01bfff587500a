// Package httptransport assembles the public HTTP surface of the catalog.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	enrichmenthandler "geocatalog/internal/enrichment/handler"
	geohandler "geocatalog/internal/geo/handler"
	"geocatalog/internal/platform/middleware"
	"geocatalog/pkg/platform/httputil"
)

// NewRouter wires the catalog and enrichment routes behind the shared
// middleware stack. The browser client is served from arbitrary origins, so
// CORS is wide open.
func NewRouter(geo *geohandler.Handler, enrichment *enrichmenthandler.Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	geo.Register(r)
	enrichment.Register(r)

	return r
}
