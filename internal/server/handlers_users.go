package server

import (
	"errors"
	"net/http"

	"github.com/claude/trainup/internal/storage"
)

// handleCurrentUser returns the signed-in user's own profile, including the
// XP and level fields the server owns.
func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.store.GetUser(r.Context(), userIDFromContext(r))
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, "account no longer exists")
		return
	}
	if err != nil {
		s.log.Error("loading user", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		s.log.Error("listing users", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list users")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// handleInviteCode generates a fresh one-time trainer invite code. Only
// trainers may invite other trainers.
func (s *Server) handleInviteCode(w http.ResponseWriter, r *http.Request) {
	if !isTrainerFromContext(r) {
		writeError(w, http.StatusForbidden, "trainer access required")
		return
	}
	inv, err := s.store.CreateInvite(r.Context(), userIDFromContext(r))
	if err != nil {
		s.log.Error("creating invite", "error", err)
		writeError(w, http.StatusInternalServerError, "could not generate invite code")
		return
	}
	writeJSON(w, http.StatusOK, inv.Code)
}
