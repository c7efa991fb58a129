package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/trainup/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, first_name, last_name, phone_number, level, current_xp,
	xp_to_next_level, training_frequency, is_trainer, experience_id`

// UserData carries the writable fields of a new account.
type UserData struct {
	FirstName    string
	LastName     string
	PhoneNumber  string
	ExperienceID uuid.UUID
	IsTrainer    bool
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.PhoneNumber,
		&u.Level, &u.CurrentXP, &u.XPToNextLevel, &u.TrainingFrequency,
		&u.IsTrainer, &u.ExperienceID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	return &u, nil
}

// GetUserByPhone looks up an account by normalized phone number.
func (db *DB) GetUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	return scanUser(db.Pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE phone_number = $1`, phone))
}

// GetUser looks up an account by ID.
func (db *DB) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return scanUser(db.Pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// CreateUser registers a new account at level 1 with no accumulated XP.
func (db *DB) CreateUser(ctx context.Context, data UserData) (*models.User, error) {
	id := uuid.New()
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO users (id, first_name, last_name, phone_number, is_trainer, experience_id)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		id, data.FirstName, data.LastName, data.PhoneNumber, data.IsTrainer, data.ExperienceID)
	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("inserting user: %w", err)
	}
	return db.GetUser(ctx, id)
}

// ListUsers returns all accounts with their experience tier attached,
// ordered by name.
func (db *DB) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT u.id, u.first_name, u.last_name, u.phone_number, u.level, u.current_xp,
		        u.xp_to_next_level, u.training_frequency, u.is_trainer, u.experience_id,
		        e.id, e.name, e.level
		 FROM users u
		 JOIN experiences e ON e.id = u.experience_id
		 ORDER BY u.first_name, u.last_name ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	var result []models.User
	for rows.Next() {
		var u models.User
		var e models.Experience
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.PhoneNumber,
			&u.Level, &u.CurrentXP, &u.XPToNextLevel, &u.TrainingFrequency,
			&u.IsTrainer, &u.ExperienceID, &e.ID, &e.Name, &e.Level); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		u.Experience = &e
		result = append(result, u)
	}
	return result, rows.Err()
}

// awardXP adds xp to a user inside tx, applying level-ups. Each level
// requires 100*level XP; leftover XP carries into the next level.
func awardXP(ctx context.Context, tx pgx.Tx, userID uuid.UUID, xp int) error {
	if xp <= 0 {
		return nil
	}

	var level, currentXP, toNext int
	err := tx.QueryRow(ctx,
		`SELECT level, current_xp, xp_to_next_level FROM users WHERE id = $1 FOR UPDATE`,
		userID).Scan(&level, &currentXP, &toNext)
	if err != nil {
		return fmt.Errorf("locking user for xp award: %w", err)
	}

	currentXP += xp
	for currentXP >= toNext {
		currentXP -= toNext
		level++
		toNext = 100 * level
	}

	_, err = tx.Exec(ctx,
		`UPDATE users SET level = $2, current_xp = $3, xp_to_next_level = $4 WHERE id = $1`,
		userID, level, currentXP, toNext)
	if err != nil {
		return fmt.Errorf("updating user xp: %w", err)
	}
	return nil
}
