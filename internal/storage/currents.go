package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/claude/trainup/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SessionStatus assembles the authoritative status snapshot for a user:
// the active session (if any), whether a new one may start, and the end
// time of the most recently finished session.
func (db *DB) SessionStatus(ctx context.Context, userID uuid.UUID) (*models.StatusSnapshot, error) {
	snap := &models.StatusSnapshot{}

	active, err := db.activeSession(ctx, userID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	snap.ActiveSession = active

	var lastFinished *time.Time
	err = db.Pool.QueryRow(ctx,
		`SELECT MAX(ended_at) FROM currents WHERE user_id = $1 AND ended_at IS NOT NULL`,
		userID).Scan(&lastFinished)
	if err != nil {
		return nil, fmt.Errorf("querying last finished session: %w", err)
	}
	snap.LastFinishedAt = lastFinished

	if active == nil {
		available, err := db.sessionAvailable(ctx, userID, lastFinished)
		if err != nil {
			return nil, err
		}
		snap.HasAvailableSession = available
	}
	return snap, nil
}

// StartSession begins a new session for the user from the best eligible
// training template. Returns ErrConflict when a session is already active
// and ErrNotFound when no training is available (none eligible, or the
// cooldown has not elapsed).
func (db *DB) StartSession(ctx context.Context, userID uuid.UUID) (*models.StatusSnapshot, error) {
	user, err := db.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, err := db.activeSession(ctx, userID); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	var lastFinished *time.Time
	err = db.Pool.QueryRow(ctx,
		`SELECT MAX(ended_at) FROM currents WHERE user_id = $1`, userID).Scan(&lastFinished)
	if err != nil {
		return nil, fmt.Errorf("querying last finished session: %w", err)
	}
	if lastFinished != nil && !models.CooldownElapsed(*lastFinished, user.TrainingFrequency, time.Now()) {
		return nil, ErrNotFound
	}

	training, err := db.eligibleTraining(ctx, user)
	if err != nil {
		return nil, err
	}

	sessionID := uuid.New()
	err = pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO currents (id, user_id, training_id) VALUES ($1, $2, $3)`,
			sessionID, userID, training.ID)
		if err != nil {
			return fmt.Errorf("inserting session: %w", err)
		}
		return db.populateSessionExercises(ctx, tx, sessionID, user, training)
	})
	if isUniqueViolation(err) {
		// Partial unique index on (user_id) WHERE ended_at IS NULL: a
		// concurrent start won the race.
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}

	return db.SessionStatus(ctx, userID)
}

// StopSession ends the user's active session, stamping ended_at and
// awarding XP for every concluded exercise. Returns ErrNotFound when
// nothing is active. Irreversible.
func (db *DB) StopSession(ctx context.Context, userID uuid.UUID) (*models.StatusSnapshot, error) {
	err := pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
		var sessionID uuid.UUID
		err := tx.QueryRow(ctx,
			`UPDATE currents SET ended_at = NOW()
			 WHERE user_id = $1 AND ended_at IS NULL
			 RETURNING id`, userID).Scan(&sessionID)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("ending session: %w", err)
		}

		var xp int
		err = tx.QueryRow(ctx,
			`SELECT COALESCE(SUM(e.xp_amount), 0)
			 FROM current_exercises ce
			 JOIN exercises e ON e.id = ce.exercise_id
			 WHERE ce.current_id = $1 AND ce.concluded_at IS NOT NULL`,
			sessionID).Scan(&xp)
		if err != nil {
			return fmt.Errorf("summing session xp: %w", err)
		}
		return awardXP(ctx, tx, userID, xp)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return db.SessionStatus(ctx, userID)
}

// SetExerciseOutcome applies finish/skip/restore to one exercise of the
// user's active session. ErrNotFound when the exercise does not exist in
// the active session; ErrConflict when it is already in the requested state.
func (db *DB) SetExerciseOutcome(ctx context.Context, userID, exerciseID uuid.UUID, outcome models.Outcome) (*models.StatusSnapshot, error) {
	var concluded, exited *time.Time
	err := db.Pool.QueryRow(ctx,
		`SELECT ce.concluded_at, ce.exited_at
		 FROM current_exercises ce
		 JOIN currents c ON c.id = ce.current_id
		 WHERE ce.id = $1 AND c.user_id = $2 AND c.ended_at IS NULL`,
		exerciseID, userID).Scan(&concluded, &exited)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying session exercise: %w", err)
	}

	state := models.SessionExercise{ConcludedAt: concluded, ExitedAt: exited}.State()

	var query string
	switch outcome {
	case models.OutcomeFinish:
		if state == models.ExerciseConcluded {
			return nil, ErrConflict
		}
		query = `UPDATE current_exercises SET concluded_at = NOW(), exited_at = NULL WHERE id = $1`
	case models.OutcomeSkip:
		if state == models.ExerciseSkipped {
			return nil, ErrConflict
		}
		query = `UPDATE current_exercises SET exited_at = NOW(), concluded_at = NULL WHERE id = $1`
	case models.OutcomeRestore:
		if state == models.ExercisePending {
			return nil, ErrConflict
		}
		query = `UPDATE current_exercises SET concluded_at = NULL, exited_at = NULL WHERE id = $1`
	default:
		return nil, fmt.Errorf("unknown outcome %q", outcome)
	}

	if _, err := db.Pool.Exec(ctx, query, exerciseID); err != nil {
		return nil, fmt.Errorf("updating session exercise: %w", err)
	}
	return db.SessionStatus(ctx, userID)
}

// activeSession loads the user's unfinished session with its exercises and
// training, or ErrNotFound.
func (db *DB) activeSession(ctx context.Context, userID uuid.UUID) (*models.Session, error) {
	var s models.Session
	var t models.Training
	err := db.Pool.QueryRow(ctx,
		`SELECT c.id, c.started_at, c.ended_at, c.training_id, c.user_id, t.id, t.name, t.week_day
		 FROM currents c
		 JOIN trainings t ON t.id = c.training_id
		 WHERE c.user_id = $1 AND c.ended_at IS NULL`,
		userID).Scan(&s.ID, &s.StartedAt, &s.EndedAt, &s.TrainingID, &s.UserID, &t.ID, &t.Name, &t.WeekDay)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying active session: %w", err)
	}
	s.Training = &t

	rows, err := db.Pool.Query(ctx,
		`SELECT ce.id, ce.concluded_at, ce.exited_at, ce.times, ce.series, ce.current_id, ce.exercise_id,
		        e.id, e.name, e.xp_amount, e.category_id
		 FROM current_exercises ce
		 JOIN exercises e ON e.id = ce.exercise_id
		 WHERE ce.current_id = $1
		 ORDER BY ce.position ASC`, s.ID)
	if err != nil {
		return nil, fmt.Errorf("querying session exercises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ce models.SessionExercise
		var e models.Exercise
		if err := rows.Scan(&ce.ID, &ce.ConcludedAt, &ce.ExitedAt, &ce.Times, &ce.Series,
			&ce.SessionID, &ce.ExerciseID, &e.ID, &e.Name, &e.XPAmount, &e.CategoryID); err != nil {
			return nil, fmt.Errorf("scanning session exercise: %w", err)
		}
		ce.Exercise = &e
		s.Exercises = append(s.Exercises, ce)
	}
	return &s, rows.Err()
}

// sessionAvailable reports whether a new session may start right now:
// cooldown elapsed and at least one eligible training exists.
func (db *DB) sessionAvailable(ctx context.Context, userID uuid.UUID, lastFinished *time.Time) (bool, error) {
	user, err := db.GetUser(ctx, userID)
	if err != nil {
		return false, err
	}
	if lastFinished != nil && !models.CooldownElapsed(*lastFinished, user.TrainingFrequency, time.Now()) {
		return false, nil
	}
	_, err = db.eligibleTraining(ctx, user)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// eligibleTraining picks the training template for the user's next session:
// trainings assigned to the user rank before tier-wide ones, which rank
// before global ones; week_day-restricted trainings only match on that
// weekday. ErrNotFound when nothing is eligible.
func (db *DB) eligibleTraining(ctx context.Context, user *models.User) (*models.Training, error) {
	weekday := int(time.Now().Weekday())

	var t models.Training
	err := db.Pool.QueryRow(ctx,
		`SELECT id, name, week_day, experience_id, user_id
		 FROM trainings
		 WHERE (user_id = $1 OR experience_id = $2 OR (user_id IS NULL AND experience_id IS NULL))
		   AND (week_day IS NULL OR week_day = $3)
		 ORDER BY (user_id IS NOT NULL) DESC, (experience_id IS NOT NULL) DESC, name ASC
		 LIMIT 1`,
		user.ID, user.ExperienceID, weekday).
		Scan(&t.ID, &t.Name, &t.WeekDay, &t.ExperienceID, &t.UserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying eligible training: %w", err)
	}
	return &t, nil
}

// populateSessionExercises expands training items into session exercise
// rows. Exercise items map one to one; category items draw Amount random
// exercises from the category that fit the user's experience tier.
func (db *DB) populateSessionExercises(ctx context.Context, tx pgx.Tx, sessionID uuid.UUID, user *models.User, training *models.Training) error {
	itemRows, err := tx.Query(ctx,
		`SELECT amount, times, series, category_id, exercise_id
		 FROM training_items WHERE training_id = $1 ORDER BY position ASC`, training.ID)
	if err != nil {
		return fmt.Errorf("querying training items: %w", err)
	}

	type item struct {
		amount     *int
		times      int
		series     int
		categoryID *uuid.UUID
		exerciseID *uuid.UUID
	}
	var items []item
	for itemRows.Next() {
		var it item
		if err := itemRows.Scan(&it.amount, &it.times, &it.series, &it.categoryID, &it.exerciseID); err != nil {
			itemRows.Close()
			return fmt.Errorf("scanning training item: %w", err)
		}
		items = append(items, it)
	}
	itemRows.Close()
	if err := itemRows.Err(); err != nil {
		return err
	}

	position := 0
	insert := func(exerciseID uuid.UUID, times, series int) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO current_exercises (id, current_id, exercise_id, times, series, position)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.New(), sessionID, exerciseID, times, series, position)
		position++
		return err
	}

	for _, it := range items {
		if it.exerciseID != nil {
			if err := insert(*it.exerciseID, it.times, it.series); err != nil {
				return fmt.Errorf("inserting session exercise: %w", err)
			}
			continue
		}
		if it.categoryID == nil {
			continue
		}

		amount := 1
		if it.amount != nil {
			amount = *it.amount
		}
		drawn, err := tx.Query(ctx,
			`SELECT e.id
			 FROM exercises e
			 LEFT JOIN experiences mn ON mn.id = e.min_experience_id
			 LEFT JOIN experiences mx ON mx.id = e.max_experience_id
			 JOIN experiences tier ON tier.id = $2
			 WHERE e.category_id = $1
			   AND (mn.level IS NULL OR mn.level <= tier.level)
			   AND (mx.level IS NULL OR mx.level >= tier.level)
			 ORDER BY RANDOM() LIMIT $3`,
			it.categoryID, user.ExperienceID, amount)
		if err != nil {
			return fmt.Errorf("drawing category exercises: %w", err)
		}
		var ids []uuid.UUID
		for drawn.Next() {
			var id uuid.UUID
			if err := drawn.Scan(&id); err != nil {
				drawn.Close()
				return fmt.Errorf("scanning drawn exercise: %w", err)
			}
			ids = append(ids, id)
		}
		drawn.Close()
		if err := drawn.Err(); err != nil {
			return err
		}
		for _, id := range ids {
			if err := insert(id, it.times, it.series); err != nil {
				return fmt.Errorf("inserting session exercise: %w", err)
			}
		}
	}
	return nil
}
