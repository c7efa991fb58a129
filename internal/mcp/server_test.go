package mcp

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/trainup/internal/client"
	"github.com/claude/trainup/internal/models"
)

type fakeSource struct {
	user    *models.User
	status  func() (*models.StatusSnapshot, error)
	start   func() (*models.StatusSnapshot, error)
	outcome func(exerciseID uuid.UUID, outcome models.Outcome) (*models.StatusSnapshot, error)
}

var _ DataSource = (*fakeSource)(nil)

func (f *fakeSource) User(context.Context) (*models.User, error) {
	if f.user != nil {
		return f.user, nil
	}
	return &models.User{TrainingFrequency: 90}, nil
}

func (f *fakeSource) SessionStatus(context.Context) (*models.StatusSnapshot, error) {
	if f.status != nil {
		return f.status()
	}
	return &models.StatusSnapshot{}, nil
}

func (f *fakeSource) StartSession(context.Context) (*models.StatusSnapshot, error) {
	if f.start != nil {
		return f.start()
	}
	return &models.StatusSnapshot{}, nil
}

func (f *fakeSource) StopSession(context.Context) (*models.StatusSnapshot, error) {
	return &models.StatusSnapshot{}, nil
}

func (f *fakeSource) SetExerciseOutcome(_ context.Context, exerciseID uuid.UUID, outcome models.Outcome) (*models.StatusSnapshot, error) {
	if f.outcome != nil {
		return f.outcome(exerciseID, outcome)
	}
	return &models.StatusSnapshot{}, nil
}

func (f *fakeSource) ListTrainings(context.Context) ([]models.Training, error) { return nil, nil }
func (f *fakeSource) ListExercises(context.Context) ([]models.Exercise, error) { return nil, nil }
func (f *fakeSource) ListCategories(context.Context) ([]models.Category, error) {
	return nil, nil
}

func newTestHandlers(ds DataSource) *handlers {
	return &handlers{ds: ds, log: slog.New(slog.DiscardHandler)}
}

func TestStatusPayloadCooldownTarget(t *testing.T) {
	finished := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	h := newTestHandlers(&fakeSource{user: &models.User{TrainingFrequency: 90}})

	payload := h.statusPayload(context.Background(), &models.StatusSnapshot{
		LastFinishedAt: &finished,
	})

	want := finished.Add(90 * time.Minute).Format(time.RFC3339)
	if got := payload["nextAvailableAt"]; got != want {
		t.Errorf("nextAvailableAt = %v, want %v", got, want)
	}
}

func TestStatusPayloadNoTargetWhenActive(t *testing.T) {
	finished := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	h := newTestHandlers(&fakeSource{})

	payload := h.statusPayload(context.Background(), &models.StatusSnapshot{
		ActiveSession:  &models.Session{ID: uuid.New()},
		LastFinishedAt: &finished,
	})

	if _, ok := payload["nextAvailableAt"]; ok {
		t.Error("nextAvailableAt present alongside an active session")
	}
}

func TestMarkExerciseValidatesArguments(t *testing.T) {
	h := newTestHandlers(&fakeSource{})

	tests := []struct {
		name string
		args map[string]any
	}{
		{"missing exercise_id", map[string]any{"outcome": "finish"}},
		{"bad exercise_id", map[string]any{"exercise_id": "not-a-uuid", "outcome": "finish"}},
		{"missing outcome", map[string]any{"exercise_id": uuid.NewString()}},
		{"bad outcome", map[string]any{"exercise_id": uuid.NewString(), "outcome": "pause"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req mcp.CallToolRequest
			req.Params.Arguments = tt.args

			result, err := h.markExercise(context.Background(), req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !result.IsError {
				t.Error("expected a tool error result")
			}
		})
	}
}

// toolErrorText extracts the message of an error tool result.
func toolErrorText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if !result.IsError {
		t.Fatal("expected a tool error result")
	}
	if len(result.Content) == 0 {
		t.Fatal("error result has no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content type = %T, want TextContent", result.Content[0])
	}
	return text.Text
}

// Remote sources surface client.APIError rather than the storage sentinels;
// the handlers must map both to the same messages.
func TestToolErrorsMappedForRemoteSource(t *testing.T) {
	h := newTestHandlers(&fakeSource{
		start: func() (*models.StatusSnapshot, error) {
			return nil, &client.APIError{StatusCode: 409, Message: "a session is already active"}
		},
		outcome: func(uuid.UUID, models.Outcome) (*models.StatusSnapshot, error) {
			return nil, &client.APIError{StatusCode: 404, Message: "exercise not found in active session"}
		},
	})

	result, err := h.startSession(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := toolErrorText(t, result), "a training session is already active"; got != want {
		t.Errorf("start_session error = %q, want %q", got, want)
	}

	var req mcp.CallToolRequest
	req.Params.Arguments = map[string]any{"exercise_id": uuid.NewString(), "outcome": "finish"}
	result, err = h.markExercise(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := toolErrorText(t, result), "exercise not found in the active session"; got != want {
		t.Errorf("mark_exercise error = %q, want %q", got, want)
	}
}

func TestMarkExercisePassesOutcome(t *testing.T) {
	var gotOutcome models.Outcome
	h := newTestHandlers(&fakeSource{
		outcome: func(_ uuid.UUID, outcome models.Outcome) (*models.StatusSnapshot, error) {
			gotOutcome = outcome
			return &models.StatusSnapshot{}, nil
		},
	})

	var req mcp.CallToolRequest
	req.Params.Arguments = map[string]any{"exercise_id": uuid.NewString(), "outcome": "skip"}

	result, err := h.markExercise(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("tool error: %+v", result)
	}
	if gotOutcome != models.OutcomeSkip {
		t.Errorf("outcome = %v, want %v", gotOutcome, models.OutcomeSkip)
	}
}
