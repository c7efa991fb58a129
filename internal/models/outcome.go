package models

import "fmt"

// Outcome is an explicit state transition requested for a session exercise.
// Values match the REST path segments.
type Outcome string

const (
	OutcomeFinish  Outcome = "finish"
	OutcomeSkip    Outcome = "skip"
	OutcomeRestore Outcome = "restore"
)

// ParseOutcome validates a wire outcome value.
func ParseOutcome(s string) (Outcome, error) {
	switch Outcome(s) {
	case OutcomeFinish, OutcomeSkip, OutcomeRestore:
		return Outcome(s), nil
	}
	return "", fmt.Errorf("unknown exercise outcome %q", s)
}
