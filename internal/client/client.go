// Package client is a typed HTTP client for the TrainUp REST API. It holds
// no ambient credential state: callers pass the bearer token into each
// request, so nothing process-wide has to be mutated on sign-in/out.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/claude/trainup/internal/models"
	"github.com/google/uuid"
)

// Client sends requests to a TrainUp server over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client targeting the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// do performs one request. A non-empty token is sent as a bearer
// credential. When out is non-nil the response body is decoded into it.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api/v1"+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding %s response: %w", path, err)
		}
	}
	return nil
}

// SignInResult is the signin response: a bearer token plus the profile.
type SignInResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// SignIn authenticates a phone number. ErrUnauthorized means the phone is
// unknown and the caller should offer sign-up.
func (c *Client) SignIn(ctx context.Context, phoneNumber string) (*SignInResult, error) {
	var result SignInResult
	err := c.do(ctx, http.MethodPost, "/signin", "",
		map[string]string{"phone_number": phoneNumber}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// SignUpData is the registration payload.
type SignUpData struct {
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PhoneNumber  string    `json:"phone_number"`
	ExperienceID uuid.UUID `json:"experience_id"`
	IsTrainer    bool      `json:"is_trainer,omitempty"`
	InviteCode   string    `json:"invite_code,omitempty"`
}

// SignUp registers a new account. ErrUnauthorized means the invite code was
// rejected; ErrConflict means the phone number is already registered.
func (c *Client) SignUp(ctx context.Context, data SignUpData) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/signup", "", data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CurrentUser fetches the signed-in user's own profile with its server-owned
// XP and level fields.
func (c *Client) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/user/me", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns all accounts.
func (c *Client) ListUsers(ctx context.Context, token string) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/user", token, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GenerateInviteCode requests a fresh one-time trainer invite code.
func (c *Client) GenerateInviteCode(ctx context.Context, token string) (int, error) {
	var code int
	if err := c.do(ctx, http.MethodGet, "/user/invite_code", token, nil, &code); err != nil {
		return 0, err
	}
	return code, nil
}

// SessionStatus fetches the authoritative status snapshot.
func (c *Client) SessionStatus(ctx context.Context, token string) (*models.StatusSnapshot, error) {
	var snap models.StatusSnapshot
	if err := c.do(ctx, http.MethodGet, "/current/active", token, nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// StartSession begins a new training session. ErrConflict: one is already
// active; ErrNotFound: nothing available.
func (c *Client) StartSession(ctx context.Context, token string) (*models.StatusSnapshot, error) {
	var snap models.StatusSnapshot
	if err := c.do(ctx, http.MethodPost, "/current/start", token, nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// StopSession ends the active session. ErrNotFound: nothing active.
func (c *Client) StopSession(ctx context.Context, token string) (*models.StatusSnapshot, error) {
	var snap models.StatusSnapshot
	if err := c.do(ctx, http.MethodPut, "/current/active/stop", token, nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// SetExerciseOutcome applies finish/skip/restore to a session exercise.
// ErrNotFound: the exercise is not in the active session; ErrConflict: it
// is already in the requested state.
func (c *Client) SetExerciseOutcome(ctx context.Context, token string, exerciseID uuid.UUID, outcome models.Outcome) (*models.StatusSnapshot, error) {
	var snap models.StatusSnapshot
	path := "/current/active/exercise/" + exerciseID.String() + "/" + string(outcome)
	if err := c.do(ctx, http.MethodPut, path, token, nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
