package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account on the server. Level and XP fields are computed and
// owned server-side; clients only display them.
type User struct {
	ID                uuid.UUID   `json:"id"`
	FirstName         string      `json:"first_name"`
	LastName          string      `json:"last_name"`
	PhoneNumber       string      `json:"phone_number"`
	Level             int         `json:"level"`
	CurrentXP         int         `json:"current_xp"`
	XPToNextLevel     int         `json:"xp_to_next_level"`
	TrainingFrequency int         `json:"training_frequency"` // cooldown between sessions, minutes
	IsTrainer         bool        `json:"is_trainer"`
	ExperienceID      uuid.UUID   `json:"experience_id"`
	Experience        *Experience `json:"experience,omitempty"`
}

// Experience is a named tier in the progression ladder (e.g. Beginner = 1).
type Experience struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Level int       `json:"level"`
}

// Category groups exercises (e.g. "Upper body", "Cardio").
type Category struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Exercises []Exercise `json:"exercises,omitempty"`
}

// Exercise is a catalog exercise definition. Min/max experience bound which
// tiers the exercise is offered to; either side may be open.
type Exercise struct {
	ID              uuid.UUID   `json:"id"`
	Name            string      `json:"name"`
	XPAmount        int         `json:"xp_amount"`
	CategoryID      uuid.UUID   `json:"category_id"`
	MinExperienceID *uuid.UUID  `json:"min_experience_id"`
	MaxExperienceID *uuid.UUID  `json:"max_experience_id"`
	Category        *Category   `json:"category,omitempty"`
	MinExperience   *Experience `json:"minExperience,omitempty"`
	MaxExperience   *Experience `json:"maxExperience,omitempty"`
}

// Training is a reusable session template. It is eligible for a user when
// it targets their experience tier, is assigned to them directly, or is
// global (neither set). WeekDay restricts it to one weekday when set (0 =
// Sunday, matching time.Weekday).
type Training struct {
	ID           uuid.UUID      `json:"id"`
	Name         string         `json:"name"`
	WeekDay      *int           `json:"week_day"`
	ExperienceID *uuid.UUID     `json:"experience_id"`
	UserID       *uuid.UUID     `json:"user_id"`
	Experience   *Experience    `json:"experience,omitempty"`
	Items        []TrainingItem `json:"trainingItems,omitempty"`
}

// TrainingItem is one slot in a training template: either a concrete
// exercise, or a category from which Amount exercises are drawn when a
// session starts.
type TrainingItem struct {
	ID         uuid.UUID  `json:"id"`
	Amount     *int       `json:"amount"`
	Times      int        `json:"times"`
	Series     int        `json:"series"`
	TrainingID uuid.UUID  `json:"training_id"`
	CategoryID *uuid.UUID `json:"category_id"`
	ExerciseID *uuid.UUID `json:"exercise_id"`
	Category   *Category  `json:"category,omitempty"`
	Exercise   *Exercise  `json:"exercise,omitempty"`
}

// Invite is a one-time code permitting self-registration as a trainer.
type Invite struct {
	ID        uuid.UUID `json:"invite_id"`
	Code      int       `json:"code"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_in"`
	UserID    uuid.UUID `json:"user_id"`
}
