package server

import (
	"log/slog"
	"net/http"

	"salesdash/internal/handlers"
	"salesdash/internal/ingest"
	"salesdash/internal/services"
)

type Server struct {
	dataset     *services.Dataset
	mux         *http.ServeMux
	logger      *slog.Logger
	apiHandlers *handlers.APIHandlers
	sseHandlers *handlers.SSEHandlers
}

type TemplateHandlers struct {
	Dashboard http.HandlerFunc
}

func NewServer(dataset *services.Dataset, mapping ingest.ColumnMapping, logger *slog.Logger, templateHandlers *TemplateHandlers) *Server {
	s := &Server{
		dataset:     dataset,
		mux:         http.NewServeMux(),
		logger:      logger,
		apiHandlers: handlers.NewAPIHandlers(dataset, mapping, logger),
		sseHandlers: handlers.NewSSEHandlers(dataset, logger),
	}
	s.setupRoutes(templateHandlers)
	return s
}

func (s *Server) setupRoutes(templateHandlers *TemplateHandlers) {
	// Dashboard routes
	s.mux.HandleFunc("GET /", templateHandlers.Dashboard)
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", s.apiHandlers.HandleStats)

	// REST API endpoints
	s.mux.HandleFunc("GET /api/kpi", s.apiHandlers.HandleKPI)
	s.mux.HandleFunc("GET /api/revenue-series", s.apiHandlers.HandleRevenueSeries)
	s.mux.HandleFunc("GET /api/ranking", s.apiHandlers.HandleRanking)
	s.mux.HandleFunc("GET /api/product-share", s.apiHandlers.HandleProductShare)
	s.mux.HandleFunc("GET /api/region-share", s.apiHandlers.HandleRegionShare)
	s.mux.HandleFunc("GET /api/geo", s.apiHandlers.HandleGeo)
	s.mux.HandleFunc("GET /api/drop-report", s.apiHandlers.HandleDropReport)
	s.mux.HandleFunc("POST /api/upload", s.apiHandlers.HandleUpload)

	// Export endpoints
	s.mux.HandleFunc("GET /export/csv", s.apiHandlers.HandleExportCSV)
	s.mux.HandleFunc("GET /export/xlsx", s.apiHandlers.HandleExportXLSX)

	// Datastar SSE endpoint
	s.mux.HandleFunc("GET /sse/dashboard", s.sseHandlers.HandleDashboard)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
