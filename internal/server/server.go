package server

import (
	"log/slog"
	"net/http"

	"synth-dashboard/internal/charts"
	"synth-dashboard/internal/handlers"
	"synth-dashboard/internal/services"
)

type Server struct {
	registry       *services.Registry
	mux            *http.ServeMux
	logger         *slog.Logger
	apiHandlers    *handlers.APIHandlers
	sseHandlers    *handlers.SSEHandlers
	pageHandlers   *handlers.PageHandlers
	exportHandlers *handlers.ExportHandlers
}

func NewServer(registry *services.Registry, logger *slog.Logger, exportSize charts.Size) *Server {
	s := &Server{
		registry:       registry,
		mux:            http.NewServeMux(),
		logger:         logger,
		apiHandlers:    handlers.NewAPIHandlers(registry, logger),
		sseHandlers:    handlers.NewSSEHandlers(registry, logger),
		pageHandlers:   handlers.NewPageHandlers(registry, logger),
		exportHandlers: handlers.NewExportHandlers(registry, exportSize, logger),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Pages
	s.mux.HandleFunc("GET /", s.pageHandlers.HandleIndex)
	s.mux.HandleFunc("GET /dashboards/{dashboard}", s.pageHandlers.HandleDashboard)
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", s.apiHandlers.HandleStats)

	// REST API endpoints
	s.mux.HandleFunc("GET /api/dashboards", s.apiHandlers.HandleDashboards)
	s.mux.HandleFunc("GET /api/{dashboard}/options", s.apiHandlers.HandleOptions)
	s.mux.HandleFunc("GET /api/{dashboard}/views", s.apiHandlers.HandleViews)

	// Datastar SSE endpoint, one event per control
	s.mux.HandleFunc("GET /sse/{dashboard}/{event}", s.sseHandlers.HandleEvent)

	s.mux.HandleFunc("GET /export/{dashboard}/scatter", s.exportHandlers.HandleScatter)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
