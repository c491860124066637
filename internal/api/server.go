// Package api is the HTTP surface for the tender tool operations. Each
// endpoint is a thin wrapper: spool the upload, call the pure component,
// serialize the record.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tritender/tendercore/internal/config"
)

// Server is the HTTP API server for tendercore.
type Server struct {
	router chi.Router
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		log: log,
		cfg: cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated tool endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey))

		r.Post("/api/tools/detect_document", s.handleDetectDocument)
		r.Post("/api/tools/extract_tender_metadata", s.handleExtractMetadata)
		r.Post("/api/tools/pricing_engine", s.handlePricingEngine)
		r.Post("/api/tools/detect_brand", s.handleDetectBrand)
		r.Post("/api/tools/compile_output", s.handleCompileOutput)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
