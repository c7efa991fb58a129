package storage

import (
	"context"
	"fmt"

	"github.com/claude/trainup/internal/models"
	"github.com/google/uuid"
)

// ExerciseData carries the writable fields of an exercise definition.
type ExerciseData struct {
	Name            string     `json:"name"`
	XPAmount        int        `json:"xp_amount"`
	CategoryID      uuid.UUID  `json:"category_id"`
	MinExperienceID *uuid.UUID `json:"min_experience_id"`
	MaxExperienceID *uuid.UUID `json:"max_experience_id"`
}

// ListExercises returns all exercise definitions ordered by name.
func (db *DB) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT e.id, e.name, e.xp_amount, e.category_id, e.min_experience_id, e.max_experience_id,
		        c.id, c.name
		 FROM exercises e
		 JOIN categories c ON c.id = e.category_id
		 ORDER BY e.name ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var result []models.Exercise
	for rows.Next() {
		var e models.Exercise
		var c models.Category
		if err := rows.Scan(&e.ID, &e.Name, &e.XPAmount, &e.CategoryID,
			&e.MinExperienceID, &e.MaxExperienceID, &c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		e.Category = &c
		result = append(result, e)
	}
	return result, rows.Err()
}

// CreateExercise inserts a new exercise definition.
func (db *DB) CreateExercise(ctx context.Context, data ExerciseData) (*models.Exercise, error) {
	e := models.Exercise{
		ID:              uuid.New(),
		Name:            data.Name,
		XPAmount:        data.XPAmount,
		CategoryID:      data.CategoryID,
		MinExperienceID: data.MinExperienceID,
		MaxExperienceID: data.MaxExperienceID,
	}
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO exercises (id, name, xp_amount, category_id, min_experience_id, max_experience_id)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.Name, e.XPAmount, e.CategoryID, e.MinExperienceID, e.MaxExperienceID)
	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("inserting exercise: %w", err)
	}
	return &e, nil
}

// UpdateExercise updates an exercise definition.
func (db *DB) UpdateExercise(ctx context.Context, id uuid.UUID, data ExerciseData) (*models.Exercise, error) {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE exercises
		 SET name = $2, xp_amount = $3, category_id = $4, min_experience_id = $5, max_experience_id = $6
		 WHERE id = $1`,
		id, data.Name, data.XPAmount, data.CategoryID, data.MinExperienceID, data.MaxExperienceID)
	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("updating exercise: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return &models.Exercise{
		ID:              id,
		Name:            data.Name,
		XPAmount:        data.XPAmount,
		CategoryID:      data.CategoryID,
		MinExperienceID: data.MinExperienceID,
		MaxExperienceID: data.MaxExperienceID,
	}, nil
}

// DeleteExercise removes an exercise definition.
func (db *DB) DeleteExercise(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM exercises WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting exercise: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
