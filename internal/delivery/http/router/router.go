package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/newcodes7/smalltown-crawler/internal/delivery/http/handler"
	"github.com/newcodes7/smalltown-crawler/internal/delivery/http/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func New(h *handler.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics)

	r.Get("/api/health", h.HandleHealthCheck)
	r.Route("/api/crawling", func(r chi.Router) {
		r.Get("/all", h.HandleCrawlAll)
		r.Get("/organization/{organizationID}", h.HandleCrawlOne)
		r.Get("/stats", h.HandleStats)
	})

	// Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	return r
}
