package mcp

import (
	"context"

	"github.com/google/uuid"

	"github.com/claude/trainup/internal/client"
	"github.com/claude/trainup/internal/models"
	"github.com/claude/trainup/internal/storage"
)

// DataSource abstracts the data layer for MCP tools, bound to one user.
// LocalSource (direct database access) and RemoteSource (REST API over a
// bearer token) both satisfy it.
type DataSource interface {
	User(ctx context.Context) (*models.User, error)
	SessionStatus(ctx context.Context) (*models.StatusSnapshot, error)
	StartSession(ctx context.Context) (*models.StatusSnapshot, error)
	StopSession(ctx context.Context) (*models.StatusSnapshot, error)
	SetExerciseOutcome(ctx context.Context, exerciseID uuid.UUID, outcome models.Outcome) (*models.StatusSnapshot, error)
	ListTrainings(ctx context.Context) ([]models.Training, error)
	ListExercises(ctx context.Context) ([]models.Exercise, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// LocalSource implements DataSource against the database directly. Used when
// the MCP server runs alongside the TrainUp server.
type LocalSource struct {
	db     *storage.DB
	userID uuid.UUID
}

var _ DataSource = (*LocalSource)(nil)

// NewLocalSource binds the database to a user.
func NewLocalSource(db *storage.DB, userID uuid.UUID) *LocalSource {
	return &LocalSource{db: db, userID: userID}
}

func (s *LocalSource) User(ctx context.Context) (*models.User, error) {
	return s.db.GetUser(ctx, s.userID)
}

func (s *LocalSource) SessionStatus(ctx context.Context) (*models.StatusSnapshot, error) {
	return s.db.SessionStatus(ctx, s.userID)
}

func (s *LocalSource) StartSession(ctx context.Context) (*models.StatusSnapshot, error) {
	return s.db.StartSession(ctx, s.userID)
}

func (s *LocalSource) StopSession(ctx context.Context) (*models.StatusSnapshot, error) {
	return s.db.StopSession(ctx, s.userID)
}

func (s *LocalSource) SetExerciseOutcome(ctx context.Context, exerciseID uuid.UUID, outcome models.Outcome) (*models.StatusSnapshot, error) {
	return s.db.SetExerciseOutcome(ctx, s.userID, exerciseID, outcome)
}

func (s *LocalSource) ListTrainings(ctx context.Context) ([]models.Training, error) {
	return s.db.ListTrainings(ctx)
}

func (s *LocalSource) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	return s.db.ListExercises(ctx)
}

func (s *LocalSource) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.db.ListCategories(ctx)
}

// RemoteSource implements DataSource by calling the TrainUp REST API. Used
// for remote MCP mode where the binary runs locally (stdio) but data lives
// on the remote server.
type RemoteSource struct {
	api   *client.Client
	token string
}

var _ DataSource = (*RemoteSource)(nil)

// NewRemoteSource binds the API client to a bearer token.
func NewRemoteSource(api *client.Client, token string) *RemoteSource {
	return &RemoteSource{api: api, token: token}
}

func (s *RemoteSource) User(ctx context.Context) (*models.User, error) {
	return s.api.CurrentUser(ctx, s.token)
}

func (s *RemoteSource) SessionStatus(ctx context.Context) (*models.StatusSnapshot, error) {
	return s.api.SessionStatus(ctx, s.token)
}

func (s *RemoteSource) StartSession(ctx context.Context) (*models.StatusSnapshot, error) {
	return s.api.StartSession(ctx, s.token)
}

func (s *RemoteSource) StopSession(ctx context.Context) (*models.StatusSnapshot, error) {
	return s.api.StopSession(ctx, s.token)
}

func (s *RemoteSource) SetExerciseOutcome(ctx context.Context, exerciseID uuid.UUID, outcome models.Outcome) (*models.StatusSnapshot, error) {
	return s.api.SetExerciseOutcome(ctx, s.token, exerciseID, outcome)
}

func (s *RemoteSource) ListTrainings(ctx context.Context) ([]models.Training, error) {
	return s.api.ListTrainings(ctx, s.token)
}

func (s *RemoteSource) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	return s.api.ListExercises(ctx, s.token)
}

func (s *RemoteSource) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.api.ListCategories(ctx, s.token)
}
