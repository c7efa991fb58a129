package models

import (
	"encoding/json"
	"testing"
	"time"
)

// TestSessionExerciseState verifies the pending/concluded/skipped mapping
// from the two timestamps.
func TestSessionExerciseState(t *testing.T) {
	now := time.Now()

	var e SessionExercise
	if got := e.State(); got != ExercisePending {
		t.Errorf("state with no timestamps = %v, want ExercisePending", got)
	}

	e.ConcludedAt = &now
	if got := e.State(); got != ExerciseConcluded {
		t.Errorf("state with concluded_at = %v, want ExerciseConcluded", got)
	}

	e = SessionExercise{ExitedAt: &now}
	if got := e.State(); got != ExerciseSkipped {
		t.Errorf("state with exited_at = %v, want ExerciseSkipped", got)
	}
}

// TestCooldownElapsed verifies the availability boundary: exactly at the
// target instant the cooldown counts as elapsed.
func TestCooldownElapsed(t *testing.T) {
	last := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"one minute before", last.Add(89 * time.Minute), false},
		{"exactly at target", last.Add(90 * time.Minute), true},
		{"after target", last.Add(91 * time.Minute), true},
		{"immediately after finish", last, false},
	}
	for _, tc := range cases {
		if got := CooldownElapsed(last, 90, tc.now); got != tc.want {
			t.Errorf("%s: CooldownElapsed = %v, want %v", tc.name, got, tc.want)
		}
	}

	if !CooldownElapsed(time.Time{}, 90, last) {
		t.Error("zero lastFinished: CooldownElapsed = false, want true")
	}
}

// TestStatusSnapshotWire verifies the snapshot unmarshals from the wire
// field names used by the REST API.
func TestStatusSnapshotWire(t *testing.T) {
	raw := `{"activeCurrent":null,"hasAvailableCurrent":true,"lastFinishedCurrentDate":"2026-03-01T12:00:00Z"}`

	var snap StatusSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if snap.ActiveSession != nil {
		t.Error("activeCurrent: want nil session")
	}
	if !snap.HasAvailableSession {
		t.Error("hasAvailableCurrent = false, want true")
	}
	if snap.LastFinishedAt == nil || !snap.LastFinishedAt.Equal(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("lastFinishedCurrentDate = %v, want 2026-03-01T12:00:00Z", snap.LastFinishedAt)
	}
}
