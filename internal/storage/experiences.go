package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/trainup/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ListExperiences returns all experience tiers ordered by level.
func (db *DB) ListExperiences(ctx context.Context) ([]models.Experience, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, level FROM experiences ORDER BY level ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying experiences: %w", err)
	}
	defer rows.Close()

	var result []models.Experience
	for rows.Next() {
		var e models.Experience
		if err := rows.Scan(&e.ID, &e.Name, &e.Level); err != nil {
			return nil, fmt.Errorf("scanning experience: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// GetExperience returns a single experience tier by ID.
func (db *DB) GetExperience(ctx context.Context, id uuid.UUID) (*models.Experience, error) {
	var e models.Experience
	err := db.Pool.QueryRow(ctx,
		`SELECT id, name, level FROM experiences WHERE id = $1`, id).
		Scan(&e.ID, &e.Name, &e.Level)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying experience: %w", err)
	}
	return &e, nil
}

// CreateExperience inserts a new experience tier.
func (db *DB) CreateExperience(ctx context.Context, name string, level int) (*models.Experience, error) {
	e := models.Experience{ID: uuid.New(), Name: name, Level: level}
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO experiences (id, name, level) VALUES ($1, $2, $3)`,
		e.ID, e.Name, e.Level)
	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("inserting experience: %w", err)
	}
	return &e, nil
}

// UpdateExperience updates name and level of an existing tier.
func (db *DB) UpdateExperience(ctx context.Context, id uuid.UUID, name string, level int) (*models.Experience, error) {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE experiences SET name = $2, level = $3 WHERE id = $1`,
		id, name, level)
	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("updating experience: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return &models.Experience{ID: id, Name: name, Level: level}, nil
}

// DeleteExperience removes an experience tier.
func (db *DB) DeleteExperience(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM experiences WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting experience: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
