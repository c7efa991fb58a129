package trainsession

import (
	"fmt"
	"strings"
	"time"

	"github.com/claude/trainup/internal/models"
)

// Countdown formats the time remaining until a new session becomes
// available, as space-joined unit tokens from days down to seconds
// ("1d 2h 3m 4s"). A unit is shown when it is non-zero or when the
// next-larger unit is shown, so interior zeros are kept ("1d 0h 5m 0s")
// while leading zeros are dropped ("30s"). Returns ok=false at or after
// the target instant.
func Countdown(lastFinished time.Time, frequencyMin int, now time.Time) (string, bool) {
	target := models.NextAvailableAt(lastFinished, frequencyMin)
	if !now.Before(target) {
		return "", false
	}

	remaining := target.Sub(now)
	days := int(remaining / (24 * time.Hour))
	hours := int(remaining/time.Hour) % 24
	minutes := int(remaining/time.Minute) % 60
	seconds := int(remaining/time.Second) % 60

	var tokens []string
	if days > 0 {
		tokens = append(tokens, fmt.Sprintf("%dd", days))
	}
	if days > 0 || hours > 0 {
		tokens = append(tokens, fmt.Sprintf("%dh", hours))
	}
	if hours > 0 || minutes > 0 {
		tokens = append(tokens, fmt.Sprintf("%dm", minutes))
	}
	if minutes > 0 || seconds > 0 {
		tokens = append(tokens, fmt.Sprintf("%ds", seconds))
	}
	return strings.Join(tokens, " "), true
}
