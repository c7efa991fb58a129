package trainsession

import (
	"testing"
	"time"

	"github.com/claude/trainup/internal/models"
)

func TestCountdownTokens(t *testing.T) {
	finished := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		frequencyMin int
		elapsed      time.Duration
		want         string
	}{
		{"one minute left of ninety", 90, 89 * time.Minute, "1m 0s"},
		{"seconds only", 90, 90*time.Minute - 30*time.Second, "30s"},
		{"interior zero hours kept", 90, 0, "1h 30m 0s"},
		{"full spread", 7 * 24 * 60, 4*24*time.Hour + 20*time.Hour + 55*time.Minute + 55*time.Second, "2d 3h 4m 5s"},
		{"zero minutes kept after hours", 120, 0, "2h 0m"},
		{"zero hours kept after days", 2 * 24 * 60, 23*time.Hour + 54*time.Minute, "1d 0h 6m 0s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Countdown(finished, tt.frequencyMin, finished.Add(tt.elapsed))
			if !ok {
				t.Fatal("Countdown returned absent, want present")
			}
			if got != tt.want {
				t.Errorf("Countdown = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCountdownAbsentAtTarget(t *testing.T) {
	finished := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	for _, elapsed := range []time.Duration{90 * time.Minute, 91 * time.Minute, 24 * time.Hour} {
		if got, ok := Countdown(finished, 90, finished.Add(elapsed)); ok {
			t.Errorf("Countdown at +%v = %q, want absent", elapsed, got)
		}
	}
}

func TestCountdownMatchesNextAvailableAt(t *testing.T) {
	finished := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	target := models.NextAvailableAt(finished, 45)

	if _, ok := Countdown(finished, 45, target.Add(-time.Second)); !ok {
		t.Error("countdown absent one second before the cooldown ends")
	}
	if _, ok := Countdown(finished, 45, target); ok {
		t.Error("countdown present at the instant the cooldown ends")
	}
}
