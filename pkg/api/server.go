// Package api exposes the anonymizer over HTTP (gin) and the standard gRPC
// health protocol.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/codeready-toolchain/anonymizer/pkg/anonymizer"
	"github.com/codeready-toolchain/anonymizer/pkg/database"
)

// Anonymizer is the pipeline served by the HTTP endpoint.
type Anonymizer interface {
	CleanHeadersCookies(ctx context.Context, req anonymizer.Request, opts anonymizer.Options) (anonymizer.CleanRequest, error)
}

// DatabaseHealth reports history-store connectivity.
type DatabaseHealth interface {
	Health(ctx context.Context) (*database.HealthStatus, error)
}

// Server is the HTTP API server.
type Server struct {
	engine *gin.Engine

	mu         sync.Mutex
	httpServer *http.Server

	anonymizer Anonymizer
	db         DatabaseHealth // nil when the history store is disabled
}

// NewServer creates the server and registers its routes.
func NewServer(anon Anonymizer) *Server {
	engine := gin.New()
	s := &Server{
		engine:     engine,
		anonymizer: anon,
	}

	engine.Use(recovery(), requestLogger(), securityHeaders())
	s.setupRoutes()
	return s
}

// SetDatabase adds the history database to the health check.
func (s *Server) SetDatabase(db DatabaseHealth) {
	s.db = db
}

func (s *Server) setupRoutes() {
	v1 := s.engine.Group("/v1")
	v1.GET("/ping", s.pingHandler)
	v1.GET("/health", s.healthHandler)
	v1.POST("/anonymize/request", s.anonymizeRequestHandler)
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start listens on addr and blocks until the server stops.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.mu.Lock()
	s.httpServer = srv
	s.mu.Unlock()
	return srv.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	slog.Info("Shutting down HTTP server")
	return srv.Shutdown(ctx)
}
