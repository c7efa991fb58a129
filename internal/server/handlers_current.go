package server

import (
	"errors"
	"net/http"

	"github.com/claude/trainup/internal/models"
	"github.com/claude/trainup/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleSessionStatus(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.SessionStatus(r.Context(), userIDFromContext(r))
	if err != nil {
		s.log.Error("session status", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load session status")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.StartSession(r.Context(), userIDFromContext(r))
	switch {
	case errors.Is(err, storage.ErrConflict):
		writeError(w, http.StatusConflict, "a session is already active")
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "no training available")
	case err != nil:
		s.log.Error("starting session", "error", err)
		writeError(w, http.StatusInternalServerError, "could not start session")
	default:
		writeJSON(w, http.StatusOK, snap)
	}
}

func (s *Server) handleStopSession(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.StopSession(r.Context(), userIDFromContext(r))
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "no active session")
	case err != nil:
		s.log.Error("stopping session", "error", err)
		writeError(w, http.StatusInternalServerError, "could not stop session")
	default:
		writeJSON(w, http.StatusOK, snap)
	}
}

func (s *Server) handleExerciseOutcome(w http.ResponseWriter, r *http.Request) {
	exerciseID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid exercise ID")
		return
	}
	outcome, err := models.ParseOutcome(chi.URLParam(r, "outcome"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := s.store.SetExerciseOutcome(r.Context(), userIDFromContext(r), exerciseID, outcome)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "exercise not found in active session")
	case errors.Is(err, storage.ErrConflict):
		writeError(w, http.StatusConflict, "exercise already in requested state")
	case err != nil:
		s.log.Error("updating session exercise", "error", err, "outcome", outcome)
		writeError(w, http.StatusInternalServerError, "could not update exercise")
	default:
		writeJSON(w, http.StatusOK, snap)
	}
}
