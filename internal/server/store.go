package server

import (
	"context"

	"github.com/claude/trainup/internal/models"
	"github.com/claude/trainup/internal/storage"
	"github.com/google/uuid"
)

// Store abstracts the persistence layer for HTTP handlers. *storage.DB is
// the production implementation; tests substitute a fake.
type Store interface {
	GetUserByPhone(ctx context.Context, phone string) (*models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	CreateUser(ctx context.Context, data storage.UserData) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)

	CreateInvite(ctx context.Context, userID uuid.UUID) (*models.Invite, error)
	ConsumeInvite(ctx context.Context, code int) error

	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	ListExercises(ctx context.Context) ([]models.Exercise, error)
	CreateExercise(ctx context.Context, data storage.ExerciseData) (*models.Exercise, error)
	UpdateExercise(ctx context.Context, id uuid.UUID, data storage.ExerciseData) (*models.Exercise, error)
	DeleteExercise(ctx context.Context, id uuid.UUID) error

	GetExperience(ctx context.Context, id uuid.UUID) (*models.Experience, error)
	ListExperiences(ctx context.Context) ([]models.Experience, error)
	CreateExperience(ctx context.Context, name string, level int) (*models.Experience, error)
	UpdateExperience(ctx context.Context, id uuid.UUID, name string, level int) (*models.Experience, error)
	DeleteExperience(ctx context.Context, id uuid.UUID) error

	ListTrainings(ctx context.Context) ([]models.Training, error)
	CreateTraining(ctx context.Context, data storage.TrainingData) (*models.Training, error)
	UpdateTraining(ctx context.Context, id uuid.UUID, data storage.TrainingData) (*models.Training, error)
	DeleteTraining(ctx context.Context, id uuid.UUID) error

	SessionStatus(ctx context.Context, userID uuid.UUID) (*models.StatusSnapshot, error)
	StartSession(ctx context.Context, userID uuid.UUID) (*models.StatusSnapshot, error)
	StopSession(ctx context.Context, userID uuid.UUID) (*models.StatusSnapshot, error)
	SetExerciseOutcome(ctx context.Context, userID, exerciseID uuid.UUID, outcome models.Outcome) (*models.StatusSnapshot, error)
}

// Compile-time check: *storage.DB satisfies Store.
var _ Store = (*storage.DB)(nil)
