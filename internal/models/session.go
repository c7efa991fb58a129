package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is one run of a training template. The server owns its lifecycle;
// clients hold read-only snapshots. Known as "current" on the wire.
type Session struct {
	ID         uuid.UUID         `json:"id"`
	StartedAt  time.Time         `json:"started_at"`
	EndedAt    *time.Time        `json:"ended_at"`
	TrainingID uuid.UUID         `json:"training_id"`
	UserID     uuid.UUID         `json:"user_id"`
	Training   *Training         `json:"training,omitempty"`
	Exercises  []SessionExercise `json:"currentExercises,omitempty"`
}

// SessionExercise is one exercise occurrence within a session. At most one
// of ConcludedAt/ExitedAt is set; both nil means pending.
type SessionExercise struct {
	ID          uuid.UUID  `json:"id"`
	ConcludedAt *time.Time `json:"concluded_at"`
	ExitedAt    *time.Time `json:"exited_at"`
	Times       int        `json:"times"`
	Series      int        `json:"series"`
	SessionID   uuid.UUID  `json:"current_id"`
	ExerciseID  uuid.UUID  `json:"exercise_id"`
	Exercise    *Exercise  `json:"exercise,omitempty"`
}

// ExerciseState reports the pending/concluded/skipped state of a session
// exercise from its two timestamps.
type ExerciseState int

const (
	ExercisePending ExerciseState = iota
	ExerciseConcluded
	ExerciseSkipped
)

// State returns the current state of the session exercise.
func (e SessionExercise) State() ExerciseState {
	switch {
	case e.ConcludedAt != nil:
		return ExerciseConcluded
	case e.ExitedAt != nil:
		return ExerciseSkipped
	default:
		return ExercisePending
	}
}

// StatusSnapshot is the authoritative session status returned by every
// session endpoint. It replaces prior client state wholesale: a nil field
// here means "none", not "unchanged".
type StatusSnapshot struct {
	ActiveSession       *Session   `json:"activeCurrent"`
	HasAvailableSession bool       `json:"hasAvailableCurrent"`
	LastFinishedAt      *time.Time `json:"lastFinishedCurrentDate"`
}

// NextAvailableAt returns the instant the cooldown after lastFinished ends,
// given the user's training frequency in minutes.
func NextAvailableAt(lastFinished time.Time, frequencyMin int) time.Time {
	return lastFinished.Add(time.Duration(frequencyMin) * time.Minute)
}

// CooldownElapsed reports whether a new session may start at now, i.e. the
// cooldown window after the last finished session has passed. A zero
// lastFinished means no session was ever finished and there is no cooldown.
func CooldownElapsed(lastFinished time.Time, frequencyMin int, now time.Time) bool {
	if lastFinished.IsZero() {
		return true
	}
	return !now.Before(NextAvailableAt(lastFinished, frequencyMin))
}
