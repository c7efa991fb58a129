package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

// TestErrorMapping verifies that the signal status codes map onto the
// package sentinels through errors.Is.
func TestErrorMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrConflict},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(tc.status)
			w.Write([]byte(`{"error":"nope"}`))
		}))

		c := New(srv.URL)
		_, err := c.SessionStatus(context.Background(), "tok")
		if !errors.Is(err, tc.want) {
			t.Errorf("status %d: errors.Is(err, %v) = false; err = %v", tc.status, tc.want, err)
		}

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Errorf("status %d: expected *APIError, got %T", tc.status, err)
		} else if apiErr.Message != "nope" {
			t.Errorf("status %d: message = %q, want %q", tc.status, apiErr.Message, "nope")
		}
		srv.Close()
	}
}

// TestErrorMappingDoesNotCrossMatch verifies a 404 does not satisfy the
// conflict sentinel and vice versa.
func TestErrorMappingDoesNotCrossMatch(t *testing.T) {
	err := &APIError{StatusCode: http.StatusNotFound, Message: "gone"}
	if errors.Is(err, ErrConflict) {
		t.Error("404 matched ErrConflict")
	}
	if errors.Is(err, ErrUnauthorized) {
		t.Error("404 matched ErrUnauthorized")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("404 did not match ErrNotFound")
	}
}

// TestBearerTokenInjection verifies the token is sent per request and that
// unauthenticated endpoints omit the header entirely.
func TestBearerTokenInjection(t *testing.T) {
	var gotAuth []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	ctx := context.Background()

	if _, err := c.SignIn(ctx, "11988887777"); err != nil {
		t.Fatalf("SignIn error: %v", err)
	}
	if _, err := c.SessionStatus(ctx, "my-token"); err != nil {
		t.Fatalf("SessionStatus error: %v", err)
	}

	if len(gotAuth) != 2 {
		t.Fatalf("requests seen = %d, want 2", len(gotAuth))
	}
	if gotAuth[0] != "" {
		t.Errorf("signin Authorization = %q, want empty", gotAuth[0])
	}
	if gotAuth[1] != "Bearer my-token" {
		t.Errorf("status Authorization = %q, want %q", gotAuth[1], "Bearer my-token")
	}
}

// TestExerciseOutcomePath verifies the outcome request hits the expected
// REST path.
func TestExerciseOutcomePath(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"activeCurrent":null,"hasAvailableCurrent":false,"lastFinishedCurrentDate":null}`))
	}))
	defer srv.Close()

	exID := uuid.New()
	c := New(srv.URL)
	if _, err := c.SetExerciseOutcome(context.Background(), "tok", exID, "skip"); err != nil {
		t.Fatalf("SetExerciseOutcome error: %v", err)
	}

	wantPath := "/api/v1/current/active/exercise/" + exID.String() + "/skip"
	if gotPath != wantPath {
		t.Errorf("path = %q, want %q", gotPath, wantPath)
	}
	if gotMethod != http.MethodPut {
		t.Errorf("method = %q, want PUT", gotMethod)
	}
}
