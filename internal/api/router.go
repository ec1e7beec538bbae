package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"listings-search/internal/common/logger"
	"listings-search/internal/listings"
)

// NewRouter assembles the service's HTTP surface.
func NewRouter(service *listings.Service, log logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(RequestID)
	r.Use(RequestLogger(log))

	r.Method(http.MethodGet, "/api/listings/search", NewSearchHandler(service, log))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
