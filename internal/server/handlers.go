package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ppiankov/rivalry/internal/engine"
	"github.com/ppiankov/rivalry/internal/model"
	"github.com/ppiankov/rivalry/internal/store"
)

const maxRequestBytes = 64 << 10

type askRequest struct {
	Question string `json:"question"`
}

// statusResponse is the body of the data maintenance endpoints
type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
	Source  string `json:"source,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"uptime": time.Since(s.started).Round(time.Second).String(),
	})
}

// ask handles POST /ask
func (s *Server) ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	// A missing or malformed body is treated as a missing question.
	_ = json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req)

	answer, err := s.asker.Ask(r.Context(), req.Question)
	if err != nil {
		if errors.Is(err, engine.ErrEmptyQuestion) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "No question provided"})
			return
		}
		s.logger.Error().Err(err).Str("question", req.Question).Msg("ask failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to answer question"})
		return
	}

	writeJSON(w, http.StatusOK, answer)
}

// listCategories handles GET /categories
func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.facts.ListCategories(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("list categories failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to list categories"})
		return
	}
	if categories == nil {
		categories = []model.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

// getCategory handles GET /categories/{name}, returning the category and its records
func (s *Server) getCategory(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	category, err := store.CategoryByName(r.Context(), s.facts, name)
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("Unknown category: %s", name)})
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Str("category", name).Msg("get category failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to load category"})
		return
	}

	stats, err := s.facts.ListStats(r.Context(), category.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("category", name).Msg("list stats failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to load category"})
		return
	}
	if stats == nil {
		stats = []model.StatRecord{}
	}

	writeJSON(w, http.StatusOK, struct {
		model.Category
		Stats []model.StatRecord `json:"stats"`
	}{category, stats})
}

// refreshData handles POST /refresh-data
func (s *Server) refreshData(w http.ResponseWriter, r *http.Request) {
	report, err := s.loader.Refresh(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("refresh failed")
		writeJSON(w, http.StatusInternalServerError, statusResponse{
			Status:  "error",
			Message: fmt.Sprintf("Error refreshing data: %v", err),
		})
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		Status:  "success",
		Message: "Data refreshed successfully",
		RunID:   report.RunID,
		Source:  report.Source,
	})
}

// initializeDB handles POST /initialize-db
func (s *Server) initializeDB(w http.ResponseWriter, r *http.Request) {
	report, err := s.loader.Initialize(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("initialize failed")
		writeJSON(w, http.StatusInternalServerError, statusResponse{
			Status:  "error",
			Message: fmt.Sprintf("Error initializing database: %v", err),
		})
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		Status:  "success",
		Message: "Database initialized successfully",
		RunID:   report.RunID,
		Source:  report.Source,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
