// Package auth holds the client-side authentication session: who is signed
// in, the bearer token for them, and the persisted phone number used for
// silent resume. Failures are terminal for the attempt; nothing retries.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/trainup/internal/client"
	"github.com/claude/trainup/internal/models"
)

// ErrInvalidPhone is returned when a phone number has fewer than ten
// digits; no request is sent in that case.
var ErrInvalidPhone = errors.New("invalid phone number")

// ErrNeedsSignUp is returned by SignIn when the server does not know the
// phone number. It signals "offer registration", not a hard failure.
var ErrNeedsSignUp = errors.New("account not registered")

// ErrInvalidInvite is returned by SignUp when the invite code is rejected.
var ErrInvalidInvite = errors.New("invalid invite code")

// ErrPhoneRegistered is returned by SignUp when the phone number already
// has an account.
var ErrPhoneRegistered = errors.New("phone number already registered")

// Session is the client-side authentication state. It owns the bearer
// token and hands it to the API client per call; no global header state.
type Session struct {
	api   *client.Client
	state *StateDB

	user       *models.User
	token      string
	needSignUp bool
}

// NewSession creates an unauthenticated session.
func NewSession(api *client.Client, state *StateDB) *Session {
	return &Session{api: api, state: state}
}

// User returns the signed-in profile, or nil.
func (s *Session) User() *models.User { return s.user }

// Token returns the bearer token for the signed-in user, or "".
func (s *Session) Token() string { return s.token }

// Authenticated reports whether a user is signed in.
func (s *Session) Authenticated() bool { return s.user != nil }

// NeedSignUp reports whether the last sign-in attempt hit an unknown phone
// number.
func (s *Session) NeedSignUp() bool { return s.needSignUp }

// IsTrainer reports whether the signed-in user manages catalogs.
func (s *Session) IsTrainer() bool { return s.user != nil && s.user.IsTrainer }

// Close releases the underlying state database.
func (s *Session) Close() error { return s.state.Close() }

// TrainingFrequency returns the signed-in user's cooldown between sessions
// in minutes, or 0 when signed out.
func (s *Session) TrainingFrequency() int {
	if s.user == nil {
		return 0
	}
	return s.user.TrainingFrequency
}

// SignIn authenticates with a phone number. The number is normalized to
// digits first; fewer than ten digits fails locally with ErrInvalidPhone.
// An unknown number returns ErrNeedsSignUp and flips the NeedSignUp flag.
func (s *Session) SignIn(ctx context.Context, phoneNumber string) error {
	if !models.ValidPhone(phoneNumber) {
		return ErrInvalidPhone
	}
	phone := models.NormalizePhone(phoneNumber)

	result, err := s.api.SignIn(ctx, phone)
	if errors.Is(err, client.ErrUnauthorized) {
		s.needSignUp = true
		return ErrNeedsSignUp
	}
	if err != nil {
		return fmt.Errorf("signing in: %w", err)
	}

	s.user = result.User
	s.token = result.Token
	s.needSignUp = false

	if err := s.state.SetPhoneNumber(result.User.PhoneNumber); err != nil {
		return err
	}
	return nil
}

// SignUp registers a new account. On success the NeedSignUp flag clears;
// the caller still has to SignIn to obtain a token.
func (s *Session) SignUp(ctx context.Context, data client.SignUpData) error {
	if !models.ValidPhone(data.PhoneNumber) {
		return ErrInvalidPhone
	}
	phone := models.NormalizePhone(data.PhoneNumber)
	data.PhoneNumber = phone

	_, err := s.api.SignUp(ctx, data)
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		return ErrInvalidInvite
	case errors.Is(err, client.ErrConflict):
		return ErrPhoneRegistered
	case err != nil:
		return fmt.Errorf("signing up: %w", err)
	}

	s.needSignUp = false
	return nil
}

// SignOut clears the token, the identity, and the persisted phone number.
// A later Resume finds nothing to resume.
func (s *Session) SignOut() error {
	s.user = nil
	s.token = ""
	s.needSignUp = false
	return s.state.ClearPhoneNumber()
}

// Resume attempts a silent sign-in from the persisted phone number.
// Returns false when no identity is saved. Any failure during resume signs
// the session out.
func (s *Session) Resume(ctx context.Context) (bool, error) {
	phone, err := s.state.PhoneNumber()
	if err != nil {
		return false, err
	}
	if phone == "" {
		return false, nil
	}

	if err := s.SignIn(ctx, phone); err != nil {
		if soErr := s.SignOut(); soErr != nil {
			return false, errors.Join(err, soErr)
		}
		return false, err
	}
	return true, nil
}
