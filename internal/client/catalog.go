package client

import (
	"context"
	"net/http"

	"github.com/claude/trainup/internal/models"
	"github.com/google/uuid"
)

// The request payloads below mirror the storage package's data types
// without importing it, which would pull pgx and the rest of the
// server-side dependencies into client binaries.

// ExerciseData is the create/update payload for an exercise definition.
type ExerciseData struct {
	Name            string     `json:"name"`
	XPAmount        int        `json:"xp_amount"`
	CategoryID      uuid.UUID  `json:"category_id"`
	MinExperienceID *uuid.UUID `json:"min_experience_id,omitempty"`
	MaxExperienceID *uuid.UUID `json:"max_experience_id,omitempty"`
}

// ExperienceData is the create/update payload for an experience tier.
type ExperienceData struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// TrainingItemData is one slot of a training template payload.
type TrainingItemData struct {
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
	ExerciseID *uuid.UUID `json:"exercise_id,omitempty"`
	Amount     *int       `json:"amount,omitempty"`
	Series     int        `json:"series"`
	Times      int        `json:"times"`
}

// TrainingData is the create/update payload for a training template.
type TrainingData struct {
	Name         string             `json:"name"`
	WeekDay      *int               `json:"week_day,omitempty"`
	ExperienceID *uuid.UUID         `json:"experience_id,omitempty"`
	UserID       *uuid.UUID         `json:"user_id,omitempty"`
	Items        []TrainingItemData `json:"trainingItems"`
}

// ErrConflict from any create/update below means the name is already taken.

func (c *Client) ListCategories(ctx context.Context, token string) ([]models.Category, error) {
	var list []models.Category
	if err := c.do(ctx, http.MethodGet, "/category", token, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) CreateCategory(ctx context.Context, token, name string) (*models.Category, error) {
	var cat models.Category
	if err := c.do(ctx, http.MethodPost, "/category", token, map[string]string{"name": name}, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Client) UpdateCategory(ctx context.Context, token string, id uuid.UUID, name string) (*models.Category, error) {
	var cat models.Category
	if err := c.do(ctx, http.MethodPut, "/category/"+id.String(), token, map[string]string{"name": name}, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Client) DeleteCategory(ctx context.Context, token string, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/category/"+id.String(), token, nil, nil)
}

func (c *Client) ListExercises(ctx context.Context, token string) ([]models.Exercise, error) {
	var list []models.Exercise
	if err := c.do(ctx, http.MethodGet, "/exercise", token, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) CreateExercise(ctx context.Context, token string, data ExerciseData) (*models.Exercise, error) {
	var e models.Exercise
	if err := c.do(ctx, http.MethodPost, "/exercise", token, data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *Client) UpdateExercise(ctx context.Context, token string, id uuid.UUID, data ExerciseData) (*models.Exercise, error) {
	var e models.Exercise
	if err := c.do(ctx, http.MethodPut, "/exercise/"+id.String(), token, data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *Client) DeleteExercise(ctx context.Context, token string, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/exercise/"+id.String(), token, nil, nil)
}

func (c *Client) ListExperiences(ctx context.Context, token string) ([]models.Experience, error) {
	var list []models.Experience
	if err := c.do(ctx, http.MethodGet, "/experience", token, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) CreateExperience(ctx context.Context, token string, data ExperienceData) (*models.Experience, error) {
	var e models.Experience
	if err := c.do(ctx, http.MethodPost, "/experience", token, data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *Client) UpdateExperience(ctx context.Context, token string, id uuid.UUID, data ExperienceData) (*models.Experience, error) {
	var e models.Experience
	if err := c.do(ctx, http.MethodPut, "/experience/"+id.String(), token, data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *Client) DeleteExperience(ctx context.Context, token string, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/experience/"+id.String(), token, nil, nil)
}

func (c *Client) ListTrainings(ctx context.Context, token string) ([]models.Training, error) {
	var list []models.Training
	if err := c.do(ctx, http.MethodGet, "/training", token, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) CreateTraining(ctx context.Context, token string, data TrainingData) (*models.Training, error) {
	var t models.Training
	if err := c.do(ctx, http.MethodPost, "/training", token, data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) UpdateTraining(ctx context.Context, token string, id uuid.UUID, data TrainingData) (*models.Training, error) {
	var t models.Training
	if err := c.do(ctx, http.MethodPut, "/training/"+id.String(), token, data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) DeleteTraining(ctx context.Context, token string, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/training/"+id.String(), token, nil, nil)
}
