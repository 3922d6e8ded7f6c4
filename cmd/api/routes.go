package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/xavierca1/calltracker/internal/infra/http/handlers"
	"github.com/xavierca1/calltracker/internal/infra/http/middleware"
)

type routeHandlers struct {
	health      *handlers.HealthHandler
	calls       *handlers.CallHandler
	reports     *handlers.ReportHandler
	settings    *handlers.SettingsHandler
	maintenance *handlers.MaintenanceHandler
}

func newRouter(h routeHandlers, allowedOrigins []string, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", h.health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/calls", func(r chi.Router) {
		r.Post("/", h.calls.Create)
		r.Get("/", h.calls.List)
	})
	r.Get("/stats/daily", h.calls.DailyStats)
	r.Post("/reports/daily", h.reports.SendDaily)

	r.Route("/settings", func(r chi.Router) {
		r.Get("/", h.settings.Get)
		r.Put("/", h.settings.Put)
		r.Post("/test", h.settings.Test)
	})

	r.Route("/maintenance", func(r chi.Router) {
		r.Post("/clear-history", h.maintenance.ClearHistory)
		r.Post("/factory-reset", h.maintenance.FactoryReset)
	})

	return r
}
