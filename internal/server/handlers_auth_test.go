package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/claude/trainup/internal/models"
	"github.com/claude/trainup/internal/storage"
	"github.com/google/uuid"
)

// TestSignInRejectsShortPhone verifies that a phone with fewer than 10
// digits is rejected before the store is consulted.
func TestSignInRejectsShortPhone(t *testing.T) {
	storeCalled := false
	s := newTestServer(&fakeStore{
		getUserByPhone: func(string) (*models.User, error) {
			storeCalled = true
			return nil, storage.ErrNotFound
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/signin",
		strings.NewReader(`{"phone_number":"(11) 3333-444"}`))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if storeCalled {
		t.Error("store was consulted for an invalid phone number")
	}
}

// TestSignInUnknownPhone verifies the 401 "needs sign-up" signal.
func TestSignInUnknownPhone(t *testing.T) {
	s := newTestServer(&fakeStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/signin",
		strings.NewReader(`{"phone_number":"(11) 98888-7777"}`))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

// TestSignInSuccess verifies the phone is normalized before lookup and
// that a verifiable token comes back with the user.
func TestSignInSuccess(t *testing.T) {
	userID := uuid.New()
	var lookedUp string
	s := newTestServer(&fakeStore{
		getUserByPhone: func(phone string) (*models.User, error) {
			lookedUp = phone
			return &models.User{ID: userID, PhoneNumber: phone, IsTrainer: true}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/signin",
		strings.NewReader(`{"phone_number":"(11) 98888-7777"}`))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body)
	}
	if lookedUp != "11988887777" {
		t.Errorf("lookup phone = %q, want normalized %q", lookedUp, "11988887777")
	}

	var resp signInResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	gotID, isTrainer, err := s.tokens.Verify(resp.Token)
	if err != nil {
		t.Fatalf("returned token does not verify: %v", err)
	}
	if gotID != userID {
		t.Errorf("token subject = %v, want %v", gotID, userID)
	}
	if !isTrainer {
		t.Error("token trainer flag = false, want true")
	}
}

// TestSignUpInvalidInvite verifies that registering as a trainer with a bad
// invite code yields 401 and never creates the account.
func TestSignUpInvalidInvite(t *testing.T) {
	created := false
	s := newTestServer(&fakeStore{
		consumeInvite: func(int) error { return storage.ErrNotFound },
		createUser: func(storage.UserData) (*models.User, error) {
			created = true
			return &models.User{}, nil
		},
	})

	body := `{"first_name":"Ana","last_name":"Reis","phone_number":"11988887777",
		"experience_id":"` + uuid.NewString() + `","is_trainer":true,"invite_code":"123456"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if created {
		t.Error("account was created despite invalid invite code")
	}
}

// TestSignUpUnknownExperience verifies that an experience_id with no matching
// row yields 400 instead of a create that would fail on the foreign key, and
// that no invite code is consumed on the way.
func TestSignUpUnknownExperience(t *testing.T) {
	created := false
	inviteConsumed := false
	s := newTestServer(&fakeStore{
		getExperience: func(uuid.UUID) (*models.Experience, error) {
			return nil, storage.ErrNotFound
		},
		consumeInvite: func(int) error {
			inviteConsumed = true
			return nil
		},
		createUser: func(storage.UserData) (*models.User, error) {
			created = true
			return &models.User{}, nil
		},
	})

	body := `{"first_name":"Ana","last_name":"Reis","phone_number":"11988887777",
		"experience_id":"` + uuid.NewString() + `","is_trainer":true,"invite_code":"123456"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400; body %s", rec.Code, rec.Body)
	}
	if inviteConsumed {
		t.Error("invite code was consumed for an unknown experience")
	}
	if created {
		t.Error("account was created despite unknown experience")
	}
}

// TestSignUpDuplicatePhone verifies the 409 mapping for an already
// registered phone number.
func TestSignUpDuplicatePhone(t *testing.T) {
	s := newTestServer(&fakeStore{
		createUser: func(storage.UserData) (*models.User, error) {
			return nil, storage.ErrDuplicate
		},
	})

	body := `{"first_name":"Ana","last_name":"Reis","phone_number":"11988887777",
		"experience_id":"` + uuid.NewString() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

// TestSignUpSuccess verifies a plain (non-trainer) registration normalizes
// the phone and returns 201.
func TestSignUpSuccess(t *testing.T) {
	var got storage.UserData
	s := newTestServer(&fakeStore{
		createUser: func(data storage.UserData) (*models.User, error) {
			got = data
			return &models.User{ID: uuid.New(), PhoneNumber: data.PhoneNumber}, nil
		},
	})

	body := `{"first_name":"Ana","last_name":"Reis","phone_number":"(11) 98888-7777",
		"experience_id":"` + uuid.NewString() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body)
	}
	if got.PhoneNumber != "11988887777" {
		t.Errorf("stored phone = %q, want normalized %q", got.PhoneNumber, "11988887777")
	}
}
