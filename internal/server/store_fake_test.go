package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/claude/trainup/internal/models"
	"github.com/claude/trainup/internal/storage"
	"github.com/google/uuid"
)

// fakeStore implements Store for handler tests. Each handler under test
// sets only the function fields it exercises; the rest return ErrNotFound.
type fakeStore struct {
	getUserByPhone     func(phone string) (*models.User, error)
	createUser         func(data storage.UserData) (*models.User, error)
	consumeInvite      func(code int) error
	createInvite       func(userID uuid.UUID) (*models.Invite, error)
	sessionStatus      func(userID uuid.UUID) (*models.StatusSnapshot, error)
	startSession       func(userID uuid.UUID) (*models.StatusSnapshot, error)
	stopSession        func(userID uuid.UUID) (*models.StatusSnapshot, error)
	setExerciseOutcome func(userID, exerciseID uuid.UUID, outcome models.Outcome) (*models.StatusSnapshot, error)
	createCategory     func(name string) (*models.Category, error)
	getExperience      func(id uuid.UUID) (*models.Experience, error)
}

var _ Store = (*fakeStore)(nil)

func (f *fakeStore) GetUserByPhone(_ context.Context, phone string) (*models.User, error) {
	if f.getUserByPhone != nil {
		return f.getUserByPhone(phone)
	}
	return nil, storage.ErrNotFound
}

func (f *fakeStore) GetUser(context.Context, uuid.UUID) (*models.User, error) {
	return nil, storage.ErrNotFound
}

func (f *fakeStore) CreateUser(_ context.Context, data storage.UserData) (*models.User, error) {
	if f.createUser != nil {
		return f.createUser(data)
	}
	return nil, storage.ErrNotFound
}

func (f *fakeStore) ListUsers(context.Context) ([]models.User, error) { return nil, nil }

func (f *fakeStore) CreateInvite(_ context.Context, userID uuid.UUID) (*models.Invite, error) {
	if f.createInvite != nil {
		return f.createInvite(userID)
	}
	return nil, storage.ErrNotFound
}

func (f *fakeStore) ConsumeInvite(_ context.Context, code int) error {
	if f.consumeInvite != nil {
		return f.consumeInvite(code)
	}
	return storage.ErrNotFound
}

func (f *fakeStore) ListCategories(context.Context) ([]models.Category, error) { return nil, nil }

func (f *fakeStore) CreateCategory(_ context.Context, name string) (*models.Category, error) {
	if f.createCategory != nil {
		return f.createCategory(name)
	}
	return nil, storage.ErrNotFound
}

func (f *fakeStore) UpdateCategory(context.Context, uuid.UUID, string) (*models.Category, error) {
	return nil, storage.ErrNotFound
}
func (f *fakeStore) DeleteCategory(context.Context, uuid.UUID) error { return storage.ErrNotFound }

func (f *fakeStore) ListExercises(context.Context) ([]models.Exercise, error) { return nil, nil }
func (f *fakeStore) CreateExercise(context.Context, storage.ExerciseData) (*models.Exercise, error) {
	return nil, storage.ErrNotFound
}
func (f *fakeStore) UpdateExercise(context.Context, uuid.UUID, storage.ExerciseData) (*models.Exercise, error) {
	return nil, storage.ErrNotFound
}
func (f *fakeStore) DeleteExercise(context.Context, uuid.UUID) error { return storage.ErrNotFound }

// GetExperience succeeds by default so sign-up tests that don't care about
// the experience level still pass its existence check.
func (f *fakeStore) GetExperience(_ context.Context, id uuid.UUID) (*models.Experience, error) {
	if f.getExperience != nil {
		return f.getExperience(id)
	}
	return &models.Experience{ID: id}, nil
}

func (f *fakeStore) ListExperiences(context.Context) ([]models.Experience, error) { return nil, nil }
func (f *fakeStore) CreateExperience(context.Context, string, int) (*models.Experience, error) {
	return nil, storage.ErrNotFound
}
func (f *fakeStore) UpdateExperience(context.Context, uuid.UUID, string, int) (*models.Experience, error) {
	return nil, storage.ErrNotFound
}
func (f *fakeStore) DeleteExperience(context.Context, uuid.UUID) error { return storage.ErrNotFound }

func (f *fakeStore) ListTrainings(context.Context) ([]models.Training, error) { return nil, nil }
func (f *fakeStore) CreateTraining(context.Context, storage.TrainingData) (*models.Training, error) {
	return nil, storage.ErrNotFound
}
func (f *fakeStore) UpdateTraining(context.Context, uuid.UUID, storage.TrainingData) (*models.Training, error) {
	return nil, storage.ErrNotFound
}
func (f *fakeStore) DeleteTraining(context.Context, uuid.UUID) error { return storage.ErrNotFound }

func (f *fakeStore) SessionStatus(_ context.Context, userID uuid.UUID) (*models.StatusSnapshot, error) {
	if f.sessionStatus != nil {
		return f.sessionStatus(userID)
	}
	return &models.StatusSnapshot{}, nil
}

func (f *fakeStore) StartSession(_ context.Context, userID uuid.UUID) (*models.StatusSnapshot, error) {
	if f.startSession != nil {
		return f.startSession(userID)
	}
	return nil, storage.ErrNotFound
}

func (f *fakeStore) StopSession(_ context.Context, userID uuid.UUID) (*models.StatusSnapshot, error) {
	if f.stopSession != nil {
		return f.stopSession(userID)
	}
	return nil, storage.ErrNotFound
}

func (f *fakeStore) SetExerciseOutcome(_ context.Context, userID, exerciseID uuid.UUID, outcome models.Outcome) (*models.StatusSnapshot, error) {
	if f.setExerciseOutcome != nil {
		return f.setExerciseOutcome(userID, exerciseID, outcome)
	}
	return nil, storage.ErrNotFound
}

// newTestServer wires a Server around the fake with a quiet logger.
func newTestServer(store Store) *Server {
	log := slog.New(slog.DiscardHandler)
	return New(store, NewTokenIssuer("test-secret", time.Hour), log)
}
