// Package api exposes the last orchestrator run's GateResults read-only over
// HTTP, for CI dashboards that poll instead of parsing report files.
//
// Grounded on ui/app.go's chi.NewRouter/middleware.Logger/middleware.Recoverer
// setup and its Get("/api/...", handler) registration style, minus the
// html/template rendering that file also does (explicitly out of scope).
package api

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"gatekeeper/domain/verdict"
)

// Server serves the most recent run's results over GET /results and
// GET /results/{name}. The result set is replaced through SetResults; reads
// and writes are synchronized, so SetResults may be called while requests
// are being served.
type Server struct {
	router *chi.Mux

	mu      sync.RWMutex
	results []verdict.GateResult
}

// NewServer builds a Server with its routes registered.
func NewServer() *Server {
	s := &Server{router: chi.NewRouter()}

	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/results", s.handleList)
	s.router.Get("/results/{name}", s.handleGet)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SetResults replaces the served result set. Called once per orchestrator run.
func (s *Server) SetResults(results []verdict.GateResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = results
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	writeJSON(w, http.StatusOK, s.results)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, res := range s.results {
		if res.Name == name {
			writeJSON(w, http.StatusOK, res)
			return
		}
	}
	http.Error(w, "trace not found", http.StatusNotFound)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
