// Package api exposes the projection service over HTTP. JSON in, JSON out;
// dashboards and charts belong to external consumers of these endpoints.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"fiscalsim/app"
	"fiscalsim/domain/core"
	"fiscalsim/internal"
	apperrors "fiscalsim/internal/errors"
)

// Server routes HTTP requests to the projection service
type Server struct {
	service *app.ProjectionService
	log     *internal.Logger
	router  chi.Router
}

// NewServer wires the router
func NewServer(service *app.ProjectionService, log *internal.Logger) *Server {
	s := &Server{service: service, log: log}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Post("/projections", s.handleProject)
	r.Post("/montecarlo", s.handleMonteCarlo)

	r.Route("/scenarios", func(r chi.Router) {
		r.Post("/", s.handleCreateScenario)
		r.Get("/", s.handleListScenarios)
		r.Get("/{id}", s.handleGetScenario)
		r.Delete("/{id}", s.handleDeleteScenario)
		r.Post("/{id}/project", s.handleProjectStored)
		r.Get("/{id}/report", s.handleScenarioReport)
	})

	s.router = r
	return s
}

// Handler returns the http.Handler for mounting
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("failed to encode response: %v", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	status := http.StatusInternalServerError
	switch {
	case core.IsNotFoundError(err) || code == apperrors.CodeNotFound:
		status = http.StatusNotFound
	case core.IsConfigError(err) || code == apperrors.CodeInvalidInput || code == apperrors.CodeScenarioInvalid:
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.log.Error("request failed: %v", err)
	}
	s.respondJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  code,
	})
}
