package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/trainup/internal/client"
	"github.com/claude/trainup/internal/models"
	"github.com/claude/trainup/internal/storage"
)

// LocalSource surfaces the storage sentinels, RemoteSource the client ones;
// the handlers treat them alike.
func isConflict(err error) bool {
	return errors.Is(err, storage.ErrConflict) || errors.Is(err, client.ErrConflict)
}

func isNotFound(err error) bool {
	return errors.Is(err, storage.ErrNotFound) || errors.Is(err, client.ErrNotFound)
}

// --- Tool definitions ---

var toolGetTrainingStatus = mcp.NewTool("get_training_status",
	mcp.WithDescription("Get the current training session status: the active session with its exercises and their states, whether a new session can start, and the remaining cooldown if not."),
)

var toolStartSession = mcp.NewTool("start_session",
	mcp.WithDescription("Start a new training session. Fails if one is already active, if the cooldown has not passed, or if no training template matches the user."),
)

var toolStopSession = mcp.NewTool("stop_session",
	mcp.WithDescription("Finish the active training session. XP is awarded for exercises marked as finished and the cooldown starts counting."),
)

var toolMarkExercise = mcp.NewTool("mark_exercise",
	mcp.WithDescription("Mark an exercise of the active session as finished or skipped, or restore it to pending."),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("ID of the exercise within the active session")),
	mcp.WithString("outcome", mcp.Required(), mcp.Description("What happened to the exercise"), mcp.Enum("finish", "skip", "restore")),
)

var toolListTrainings = mcp.NewTool("list_trainings",
	mcp.WithDescription("List all training templates with their item slots (fixed exercises or category draws)."),
)

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List all exercise definitions with XP amounts and experience tier bounds."),
)

var toolGetUserProgress = mcp.NewTool("get_user_progress",
	mcp.WithDescription("Get the user's level, XP toward the next level, experience tier, and training frequency."),
)

// --- Tool handlers ---

// statusPayload decorates a snapshot with the derived cooldown target so MCP
// clients don't need to know the frequency arithmetic.
func (h *handlers) statusPayload(ctx context.Context, snap *models.StatusSnapshot) map[string]any {
	payload := map[string]any{
		"activeCurrent":           snap.ActiveSession,
		"hasAvailableCurrent":     snap.HasAvailableSession,
		"lastFinishedCurrentDate": snap.LastFinishedAt,
	}
	if snap.ActiveSession == nil && !snap.HasAvailableSession && snap.LastFinishedAt != nil {
		if user, err := h.ds.User(ctx); err == nil {
			target := models.NextAvailableAt(*snap.LastFinishedAt, user.TrainingFrequency)
			payload["nextAvailableAt"] = target.Format(time.RFC3339)
		}
	}
	return payload
}

func (h *handlers) getTrainingStatus(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := h.ds.SessionStatus(ctx)
	if err != nil {
		h.log.Error("mcp get_training_status", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(h.statusPayload(ctx, snap))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) startSession(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := h.ds.StartSession(ctx)
	if isConflict(err) {
		return mcp.NewToolResultError("a training session is already active"), nil
	}
	if isNotFound(err) {
		return mcp.NewToolResultError("no training session available: the cooldown has not passed or no template matches"), nil
	}
	if err != nil {
		h.log.Error("mcp start_session", "error", err)
		return mcp.NewToolResultError("start failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(h.statusPayload(ctx, snap))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) stopSession(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := h.ds.StopSession(ctx)
	if isNotFound(err) {
		return mcp.NewToolResultError("no active session to stop"), nil
	}
	if err != nil {
		h.log.Error("mcp stop_session", "error", err)
		return mcp.NewToolResultError("stop failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(h.statusPayload(ctx, snap))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) markExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idStr, err := req.RequireString("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}
	exerciseID, err := uuid.Parse(idStr)
	if err != nil {
		return mcp.NewToolResultError("invalid exercise_id: " + err.Error()), nil
	}

	outcomeStr, err := req.RequireString("outcome")
	if err != nil {
		return mcp.NewToolResultError("outcome parameter is required"), nil
	}
	outcome, err := models.ParseOutcome(outcomeStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	snap, err := h.ds.SetExerciseOutcome(ctx, exerciseID, outcome)
	if isNotFound(err) {
		return mcp.NewToolResultError("exercise not found in the active session"), nil
	}
	if isConflict(err) {
		return mcp.NewToolResultError("the exercise is already in that state"), nil
	}
	if err != nil {
		h.log.Error("mcp mark_exercise", "error", err)
		return mcp.NewToolResultError("mark failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(h.statusPayload(ctx, snap))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listTrainings(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	trainings, err := h.ds.ListTrainings(ctx)
	if err != nil {
		h.log.Error("mcp list_trainings", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(trainings)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listExercises(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercises, err := h.ds.ListExercises(ctx)
	if err != nil {
		h.log.Error("mcp list_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(exercises)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getUserProgress(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	user, err := h.ds.User(ctx)
	if err != nil {
		h.log.Error("mcp get_user_progress", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"first_name":         user.FirstName,
		"last_name":          user.LastName,
		"level":              user.Level,
		"current_xp":         user.CurrentXP,
		"xp_to_next_level":   user.XPToNextLevel,
		"training_frequency": user.TrainingFrequency,
		"experience":         user.Experience,
		"is_trainer":         user.IsTrainer,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
