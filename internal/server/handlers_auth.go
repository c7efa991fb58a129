package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/claude/trainup/internal/models"
	"github.com/claude/trainup/internal/storage"
	"github.com/google/uuid"
)

type signInRequest struct {
	PhoneNumber string `json:"phone_number"`
}

type signInResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	if !models.ValidPhone(req.PhoneNumber) {
		writeError(w, http.StatusBadRequest, "invalid phone number")
		return
	}
	phone := models.NormalizePhone(req.PhoneNumber)

	user, err := s.store.GetUserByPhone(r.Context(), phone)
	if errors.Is(err, storage.ErrNotFound) {
		// 401 signals "needs sign-up" to the client.
		writeError(w, http.StatusUnauthorized, "unknown phone number")
		return
	}
	if err != nil {
		s.log.Error("signin lookup", "error", err)
		writeError(w, http.StatusInternalServerError, "sign-in failed")
		return
	}

	token, err := s.tokens.Issue(user.ID, user.IsTrainer)
	if err != nil {
		s.log.Error("issuing token", "error", err)
		writeError(w, http.StatusInternalServerError, "sign-in failed")
		return
	}

	writeJSON(w, http.StatusOK, signInResponse{Token: token, User: user})
}

type signUpRequest struct {
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PhoneNumber  string    `json:"phone_number"`
	ExperienceID uuid.UUID `json:"experience_id"`
	IsTrainer    bool      `json:"is_trainer"`
	InviteCode   string    `json:"invite_code"`
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	if !models.ValidPhone(req.PhoneNumber) {
		writeError(w, http.StatusBadRequest, "invalid phone number")
		return
	}
	phone := models.NormalizePhone(req.PhoneNumber)
	if req.FirstName == "" || req.LastName == "" {
		writeError(w, http.StatusBadRequest, "first_name and last_name are required")
		return
	}
	if req.ExperienceID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "experience_id is required")
		return
	}

	// Check the experience level before consuming an invite, so a bad
	// request does not burn a one-time code.
	if _, err := s.store.GetExperience(r.Context(), req.ExperienceID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "unknown experience_id")
			return
		}
		s.log.Error("looking up experience", "error", err)
		writeError(w, http.StatusInternalServerError, "sign-up failed")
		return
	}

	// Registering as a trainer consumes a one-time invite code.
	if req.IsTrainer {
		code, err := strconv.Atoi(req.InviteCode)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid invite code")
			return
		}
		if err := s.store.ConsumeInvite(r.Context(), code); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusUnauthorized, "invalid invite code")
				return
			}
			s.log.Error("consuming invite", "error", err)
			writeError(w, http.StatusInternalServerError, "sign-up failed")
			return
		}
	}

	user, err := s.store.CreateUser(r.Context(), storage.UserData{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  phone,
		ExperienceID: req.ExperienceID,
		IsTrainer:    req.IsTrainer,
	})
	if errors.Is(err, storage.ErrDuplicate) {
		writeError(w, http.StatusConflict, "phone number already registered")
		return
	}
	if err != nil {
		s.log.Error("creating user", "error", err)
		writeError(w, http.StatusInternalServerError, "sign-up failed")
		return
	}

	writeJSON(w, http.StatusCreated, user)
}
