package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"fiscalsim/domain/core"
	"fiscalsim/domain/policy"
	apperrors "fiscalsim/internal/errors"
	"fiscalsim/internal/sim"
)

// projectRequest is the body for anonymous (unstored) projection runs
type projectRequest struct {
	Name        string                  `json:"name"`
	Mechanics   policy.PolicyMechanics  `json:"mechanics"`
	Assumptions policy.MacroAssumptions `json:"assumptions"`
}

func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, apperrors.InvalidInput("malformed request body"))
		return
	}
	if req.Name == "" {
		req.Name = "ad-hoc"
	}

	scenario := policy.NewScenario(req.Name, req.Mechanics, req.Assumptions)
	result, err := s.service.Project(r.Context(), scenario)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

type monteCarloRequest struct {
	projectRequest
	Trials  int    `json:"trials"`
	Workers int    `json:"workers"`
	Seed    uint64 `json:"seed"`
}

func (s *Server) handleMonteCarlo(w http.ResponseWriter, r *http.Request) {
	var req monteCarloRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, apperrors.InvalidInput("malformed request body"))
		return
	}
	if req.Name == "" {
		req.Name = "ad-hoc"
	}
	if req.Trials == 0 {
		req.Trials = 1000
	}
	if req.Workers == 0 {
		req.Workers = 8
	}

	scenario := policy.NewScenario(req.Name, req.Mechanics, req.Assumptions)
	result, err := s.service.MonteCarlo(r.Context(), scenario, sim.MonteCarloConfig{
		Trials:  req.Trials,
		Workers: req.Workers,
		Seed:    req.Seed,
	})
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

type createScenarioRequest struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Mechanics   policy.PolicyMechanics  `json:"mechanics"`
	Assumptions policy.MacroAssumptions `json:"assumptions"`
}

func (s *Server) handleCreateScenario(w http.ResponseWriter, r *http.Request) {
	var req createScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, apperrors.InvalidInput("malformed request body"))
		return
	}

	scenario := policy.NewScenario(req.Name, req.Mechanics, req.Assumptions)
	scenario.Description = req.Description
	if err := s.service.SaveScenario(r.Context(), &scenario); err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, scenario)
}

func (s *Server) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	scenarios, err := s.service.ListScenarios(r.Context(), limit, offset)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, scenarios)
}

func (s *Server) handleGetScenario(w http.ResponseWriter, r *http.Request) {
	id := core.ScenarioID(chi.URLParam(r, "id"))
	scenario, err := s.service.GetScenario(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, scenario)
}

func (s *Server) handleDeleteScenario(w http.ResponseWriter, r *http.Request) {
	id := core.ScenarioID(chi.URLParam(r, "id"))
	if err := s.service.DeleteScenario(r.Context(), id); err != nil {
		s.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleProjectStored(w http.ResponseWriter, r *http.Request) {
	id := core.ScenarioID(chi.URLParam(r, "id"))
	result, err := s.service.ProjectStored(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}
