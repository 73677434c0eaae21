package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"recallboard/internal/dataset"
	"recallboard/internal/handlers"
	"recallboard/internal/handlers/api"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(store *dataset.Store, opts dataset.StatsOptions) {
	// Initialize handlers
	pageHandler := handlers.NewPageHandler(store, s.Cfg)
	lookupHandler := api.NewLookupHandler(store)
	statsHandler := api.NewStatsHandler(store, opts)
	healthHandler := api.NewHealthHandler(store)

	// Page routes
	s.App.Get("/", pageHandler.Index)
	s.App.Get("/lookup", pageHandler.Lookup)

	// JSON API
	apiGroup := s.App.Group("/api")
	apiGroup.Get("/lookup/:plate", lookupHandler.Lookup)
	apiGroup.Get("/stats", statsHandler.Stats)
	apiGroup.Get("/health", healthHandler.Health)

	// Prometheus scrape endpoint
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
