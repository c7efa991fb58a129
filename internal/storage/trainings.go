package storage

import (
	"context"
	"fmt"

	"github.com/claude/trainup/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TrainingItemData carries the writable fields of one training slot.
type TrainingItemData struct {
	CategoryID *uuid.UUID `json:"category_id"`
	ExerciseID *uuid.UUID `json:"exercise_id"`
	Amount     *int       `json:"amount"`
	Series     int        `json:"series"`
	Times      int        `json:"times"`
}

// TrainingData carries the writable fields of a training template.
type TrainingData struct {
	Name         string             `json:"name"`
	WeekDay      *int               `json:"week_day"`
	ExperienceID *uuid.UUID         `json:"experience_id"`
	UserID       *uuid.UUID         `json:"user_id"`
	Items        []TrainingItemData `json:"trainingItems"`
}

// ListTrainings returns all training templates with their items.
func (db *DB) ListTrainings(ctx context.Context) ([]models.Training, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, week_day, experience_id, user_id
		 FROM trainings ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying trainings: %w", err)
	}
	defer rows.Close()

	var result []models.Training
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var t models.Training
		if err := rows.Scan(&t.ID, &t.Name, &t.WeekDay, &t.ExperienceID, &t.UserID); err != nil {
			return nil, fmt.Errorf("scanning training: %w", err)
		}
		index[t.ID] = len(result)
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemRows, err := db.Pool.Query(ctx,
		`SELECT id, training_id, amount, times, series, category_id, exercise_id
		 FROM training_items ORDER BY training_id, position ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying training items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item models.TrainingItem
		if err := itemRows.Scan(&item.ID, &item.TrainingID, &item.Amount,
			&item.Times, &item.Series, &item.CategoryID, &item.ExerciseID); err != nil {
			return nil, fmt.Errorf("scanning training item: %w", err)
		}
		if i, ok := index[item.TrainingID]; ok {
			result[i].Items = append(result[i].Items, item)
		}
	}
	return result, itemRows.Err()
}

// CreateTraining inserts a training template and its items in one transaction.
func (db *DB) CreateTraining(ctx context.Context, data TrainingData) (*models.Training, error) {
	t := &models.Training{
		ID:           uuid.New(),
		Name:         data.Name,
		WeekDay:      data.WeekDay,
		ExperienceID: data.ExperienceID,
		UserID:       data.UserID,
	}

	err := pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO trainings (id, name, week_day, experience_id, user_id)
			 VALUES ($1, $2, $3, $4, $5)`,
			t.ID, t.Name, t.WeekDay, t.ExperienceID, t.UserID)
		if err != nil {
			return err
		}
		items, err := insertTrainingItems(ctx, tx, t.ID, data.Items)
		if err != nil {
			return err
		}
		t.Items = items
		return nil
	})
	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("inserting training: %w", err)
	}
	return t, nil
}

// UpdateTraining replaces a training template and its items.
func (db *DB) UpdateTraining(ctx context.Context, id uuid.UUID, data TrainingData) (*models.Training, error) {
	t := &models.Training{
		ID:           id,
		Name:         data.Name,
		WeekDay:      data.WeekDay,
		ExperienceID: data.ExperienceID,
		UserID:       data.UserID,
	}

	err := pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE trainings SET name = $2, week_day = $3, experience_id = $4, user_id = $5
			 WHERE id = $1`,
			id, data.Name, data.WeekDay, data.ExperienceID, data.UserID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		if _, err := tx.Exec(ctx, `DELETE FROM training_items WHERE training_id = $1`, id); err != nil {
			return err
		}
		items, err := insertTrainingItems(ctx, tx, id, data.Items)
		if err != nil {
			return err
		}
		t.Items = items
		return nil
	})
	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err == ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating training: %w", err)
	}
	return t, nil
}

// DeleteTraining removes a training template and, via cascade, its items.
func (db *DB) DeleteTraining(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM trainings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting training: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func insertTrainingItems(ctx context.Context, tx pgx.Tx, trainingID uuid.UUID, items []TrainingItemData) ([]models.TrainingItem, error) {
	result := make([]models.TrainingItem, 0, len(items))
	for i, item := range items {
		row := models.TrainingItem{
			ID:         uuid.New(),
			Amount:     item.Amount,
			Times:      item.Times,
			Series:     item.Series,
			TrainingID: trainingID,
			CategoryID: item.CategoryID,
			ExerciseID: item.ExerciseID,
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO training_items (id, training_id, amount, times, series, category_id, exercise_id, position)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			row.ID, trainingID, row.Amount, row.Times, row.Series, row.CategoryID, row.ExerciseID, i)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, nil
}
