package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/McSimik/inf-search/pkg/config"
	"github.com/McSimik/inf-search/pkg/health"
	"github.com/McSimik/inf-search/pkg/metrics"
	"github.com/McSimik/inf-search/pkg/middleware"
)

// Server is the HTTP front of the search engine.
type Server struct {
	http *http.Server
}

// NewServer wires the API routes, health probes, and middleware chain
// into an http.Server. m may be nil to skip request metrics.
func NewServer(cfg config.ServerConfig, h *Handler, checker *health.Checker, m *metrics.Metrics) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/search", h.Search)
	mux.HandleFunc("POST /api/v1/documents", h.AddDocument)
	mux.HandleFunc("GET /api/v1/documents/{id}", h.GetDocument)
	mux.HandleFunc("GET /api/v1/cache/stats", h.CacheStats)
	mux.HandleFunc("POST /api/v1/cache/invalidate", h.CacheInvalidate)
	mux.HandleFunc("GET /health/live", checker.LiveHandler())
	mux.HandleFunc("GET /health/ready", checker.ReadyHandler())

	var handler http.Handler = mux
	if m != nil {
		handler = middleware.Metrics(m)(handler)
	}
	handler = middleware.RequestID(handler)

	return &Server{
		http: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}
}

// ListenAndServe blocks serving requests until Shutdown or failure.
func (s *Server) ListenAndServe() error {
	return s.http.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.http.Addr
}
