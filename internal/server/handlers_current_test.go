package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/claude/trainup/internal/models"
	"github.com/claude/trainup/internal/storage"
	"github.com/google/uuid"
)

func authedRequest(t *testing.T, s *Server, method, path string, trainer bool) *http.Request {
	t.Helper()
	token, err := s.tokens.Issue(uuid.New(), trainer)
	if err != nil {
		t.Fatalf("issuing test token: %v", err)
	}
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

// TestSessionStatusRequiresAuth verifies that session endpoints reject
// requests without a bearer token.
func TestSessionStatusRequiresAuth(t *testing.T) {
	s := newTestServer(&fakeStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/current/active", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

// TestStartSessionConflict verifies the 409 mapping when a session is
// already active.
func TestStartSessionConflict(t *testing.T) {
	s := newTestServer(&fakeStore{
		startSession: func(uuid.UUID) (*models.StatusSnapshot, error) {
			return nil, storage.ErrConflict
		},
	})

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, authedRequest(t, s, http.MethodPost, "/api/v1/current/start", false))

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

// TestStartSessionNoneAvailable verifies the 404 mapping when no training
// is available.
func TestStartSessionNoneAvailable(t *testing.T) {
	s := newTestServer(&fakeStore{
		startSession: func(uuid.UUID) (*models.StatusSnapshot, error) {
			return nil, storage.ErrNotFound
		},
	})

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, authedRequest(t, s, http.MethodPost, "/api/v1/current/start", false))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

// TestStopSessionSuccess verifies stop returns the fresh snapshot.
func TestStopSessionSuccess(t *testing.T) {
	finished := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newTestServer(&fakeStore{
		stopSession: func(uuid.UUID) (*models.StatusSnapshot, error) {
			return &models.StatusSnapshot{LastFinishedAt: &finished}, nil
		},
	})

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, authedRequest(t, s, http.MethodPut, "/api/v1/current/active/stop", false))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body)
	}
	var snap models.StatusSnapshot
	if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if snap.LastFinishedAt == nil || !snap.LastFinishedAt.Equal(finished) {
		t.Errorf("lastFinishedCurrentDate = %v, want %v", snap.LastFinishedAt, finished)
	}
}

// TestExerciseOutcomeRouting verifies the outcome path segment is parsed
// and forwarded, and that bad outcomes are rejected.
func TestExerciseOutcomeRouting(t *testing.T) {
	var gotOutcome models.Outcome
	var gotExercise uuid.UUID
	s := newTestServer(&fakeStore{
		setExerciseOutcome: func(_, exerciseID uuid.UUID, outcome models.Outcome) (*models.StatusSnapshot, error) {
			gotExercise = exerciseID
			gotOutcome = outcome
			return &models.StatusSnapshot{}, nil
		},
	})

	exID := uuid.New()
	for _, outcome := range []string{"finish", "skip", "restore"} {
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, authedRequest(t, s, http.MethodPut,
			"/api/v1/current/active/exercise/"+exID.String()+"/"+outcome, false))

		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", outcome, rec.Code)
		}
		if gotOutcome != models.Outcome(outcome) {
			t.Errorf("outcome = %q, want %q", gotOutcome, outcome)
		}
		if gotExercise != exID {
			t.Errorf("exercise ID = %v, want %v", gotExercise, exID)
		}
	}

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, authedRequest(t, s, http.MethodPut,
		"/api/v1/current/active/exercise/"+exID.String()+"/explode", false))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown outcome: status = %d, want 400", rec.Code)
	}
}

// TestExerciseOutcomeConflict verifies the 409 mapping when the exercise is
// already in the requested state.
func TestExerciseOutcomeConflict(t *testing.T) {
	s := newTestServer(&fakeStore{
		setExerciseOutcome: func(_, _ uuid.UUID, _ models.Outcome) (*models.StatusSnapshot, error) {
			return nil, storage.ErrConflict
		},
	})

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, authedRequest(t, s, http.MethodPut,
		"/api/v1/current/active/exercise/"+uuid.NewString()+"/finish", false))

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

// TestCatalogRequiresTrainer verifies catalog mutation endpoints reject
// non-trainer tokens.
func TestCatalogRequiresTrainer(t *testing.T) {
	s := newTestServer(&fakeStore{
		createCategory: func(name string) (*models.Category, error) {
			return &models.Category{ID: uuid.New(), Name: name}, nil
		},
	})

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, authedRequest(t, s, http.MethodGet, "/api/v1/category", false))
	if rec.Code != http.StatusForbidden {
		t.Errorf("non-trainer: status = %d, want 403", rec.Code)
	}

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, authedRequest(t, s, http.MethodGet, "/api/v1/category", true))
	if rec.Code != http.StatusOK {
		t.Errorf("trainer: status = %d, want 200", rec.Code)
	}
}
