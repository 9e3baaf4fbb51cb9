// Package web serves a local development stand-in for the OptiCode backend.
// It exposes the same REST surface the hosted authority does, backed by a
// SQLite file instead of the production store, so the CLI can be exercised
// end to end without network access.
package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/opticode-ai/opticode/internal/adapters/sqlite"
	"github.com/opticode-ai/opticode/internal/ports"
)

type Server struct {
	store  *sqlite.SessionStore
	router *http.ServeMux
	addr   string
	logger ports.Logger
}

func NewServer(store *sqlite.SessionStore, addr string, logger ports.Logger) *Server {
	s := &Server{
		store:  store,
		router: http.NewServeMux(),
		addr:   addr,
		logger: logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.HandleFunc("GET /api/health", s.handleHealth)

	// Auth
	s.router.HandleFunc("POST /api/auth/register", s.handleRegister)
	s.router.HandleFunc("POST /api/auth/login", s.handleLogin)
	s.router.HandleFunc("GET /api/auth/me", s.handleMe)

	// History
	s.router.HandleFunc("GET /api/history", s.handleListHistory)
	s.router.HandleFunc("DELETE /api/history/{id}", s.handleDeleteSession)
	s.router.HandleFunc("PATCH /api/history/{id}/rename", s.handleRenameSession)
	s.router.HandleFunc("PATCH /api/history/{id}/star", s.handleToggleStar)

	// Analysis
	s.router.HandleFunc("POST /api/analyse", s.handleAnalyse)

	// Profile
	s.router.HandleFunc("GET /api/profile/stats", s.handleProfileStats)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	fmt.Printf("Development authority listening on %s\n", s.addr)

	// Handle graceful shutdown
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(fmt.Sprintf("server shutdown error: %v", err))
		}
	}()

	err := server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil // Graceful shutdown
	}
	return err
}
