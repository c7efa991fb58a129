package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/claude/trainup/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// idParam parses the {id} URL parameter; writes a 400 and returns false on
// malformed input.
func idParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid ID")
		return uuid.Nil, false
	}
	return id, true
}

// respondMutation maps storage errors from create/update/delete calls onto
// the catalog error contract: 409 duplicate name, 404 unknown entity.
func (s *Server) respondMutation(w http.ResponseWriter, v any, err error, what string) {
	switch {
	case errors.Is(err, storage.ErrDuplicate):
		writeError(w, http.StatusConflict, what+" name already in use")
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, what+" not found")
	case err != nil:
		s.log.Error("catalog mutation", "entity", what, "error", err)
		writeError(w, http.StatusInternalServerError, "could not save "+what)
	case v == nil:
		w.WriteHeader(http.StatusNoContent)
	default:
		writeJSON(w, http.StatusOK, v)
	}
}

func (s *Server) respondList(w http.ResponseWriter, v any, err error, what string) {
	if err != nil {
		s.log.Error("catalog list", "entity", what, "error", err)
		writeError(w, http.StatusInternalServerError, "could not list "+what)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// --- categories ---

type categoryRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.ListCategories(r.Context())
	s.respondList(w, list, err, "categories")
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	c, err := s.store.CreateCategory(r.Context(), req.Name)
	s.respondMutation(w, c, err, "category")
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	c, err := s.store.UpdateCategory(r.Context(), id, req.Name)
	s.respondMutation(w, c, err, "category")
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	s.respondMutation(w, nil, s.store.DeleteCategory(r.Context(), id), "category")
}

// --- exercises ---

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.ListExercises(r.Context())
	s.respondList(w, list, err, "exercises")
}

func (s *Server) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	var data storage.ExerciseData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil || data.Name == "" || data.CategoryID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "name and category_id are required")
		return
	}
	e, err := s.store.CreateExercise(r.Context(), data)
	s.respondMutation(w, e, err, "exercise")
}

func (s *Server) handleUpdateExercise(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var data storage.ExerciseData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil || data.Name == "" || data.CategoryID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "name and category_id are required")
		return
	}
	e, err := s.store.UpdateExercise(r.Context(), id, data)
	s.respondMutation(w, e, err, "exercise")
}

func (s *Server) handleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	s.respondMutation(w, nil, s.store.DeleteExercise(r.Context(), id), "exercise")
}

// --- experiences ---

type experienceRequest struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

func (s *Server) handleListExperiences(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.ListExperiences(r.Context())
	s.respondList(w, list, err, "experiences")
}

func (s *Server) handleCreateExperience(w http.ResponseWriter, r *http.Request) {
	var req experienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	e, err := s.store.CreateExperience(r.Context(), req.Name, req.Level)
	s.respondMutation(w, e, err, "experience")
}

func (s *Server) handleUpdateExperience(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req experienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	e, err := s.store.UpdateExperience(r.Context(), id, req.Name, req.Level)
	s.respondMutation(w, e, err, "experience")
}

func (s *Server) handleDeleteExperience(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	s.respondMutation(w, nil, s.store.DeleteExperience(r.Context(), id), "experience")
}

// --- trainings ---

func (s *Server) handleListTrainings(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.ListTrainings(r.Context())
	s.respondList(w, list, err, "trainings")
}

func (s *Server) handleCreateTraining(w http.ResponseWriter, r *http.Request) {
	var data storage.TrainingData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil || data.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	t, err := s.store.CreateTraining(r.Context(), data)
	s.respondMutation(w, t, err, "training")
}

func (s *Server) handleUpdateTraining(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var data storage.TrainingData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil || data.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	t, err := s.store.UpdateTraining(r.Context(), id, data)
	s.respondMutation(w, t, err, "training")
}

func (s *Server) handleDeleteTraining(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	s.respondMutation(w, nil, s.store.DeleteTraining(r.Context(), id), "training")
}
