package storage

import (
	"context"
	"fmt"

	"github.com/claude/trainup/internal/models"
	"github.com/google/uuid"
)

// ListCategories returns all categories with their exercises attached.
func (db *DB) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	var result []models.Category
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		index[c.ID] = len(result)
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	exercises, err := db.ListExercises(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range exercises {
		if i, ok := index[e.CategoryID]; ok {
			result[i].Exercises = append(result[i].Exercises, e)
		}
	}
	return result, nil
}

// CreateCategory inserts a new category.
func (db *DB) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	c := models.Category{ID: uuid.New(), Name: name}
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO categories (id, name) VALUES ($1, $2)`, c.ID, c.Name)
	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("inserting category: %w", err)
	}
	return &c, nil
}

// UpdateCategory renames a category.
func (db *DB) UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*models.Category, error) {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE categories SET name = $2 WHERE id = $1`, id, name)
	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("updating category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return &models.Category{ID: id, Name: name}, nil
}

// DeleteCategory removes a category.
func (db *DB) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
