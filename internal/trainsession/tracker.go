// Package trainsession tracks the user's training session state against the
// server: whether a session is running, whether a new one may start, and how
// long the cooldown has left. The tracker holds the last status snapshot it
// received and recomputes the cooldown countdown once a second while one is
// pending.
package trainsession

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/claude/trainup/internal/models"
)

// Phase is the tracker's reading of the current snapshot. Exactly one phase
// holds at a time.
type Phase int

const (
	// PhaseActive means a session is running and exercises can be marked.
	PhaseActive Phase = iota
	// PhaseAvailable means no session is running and a new one may start.
	PhaseAvailable
	// PhaseCooldown means no session is running and the cooldown after the
	// last finished one has not passed yet.
	PhaseCooldown
)

func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseAvailable:
		return "available"
	case PhaseCooldown:
		return "cooldown"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// API is the slice of the HTTP client the tracker drives.
type API interface {
	SessionStatus(ctx context.Context, token string) (*models.StatusSnapshot, error)
	StartSession(ctx context.Context, token string) (*models.StatusSnapshot, error)
	StopSession(ctx context.Context, token string) (*models.StatusSnapshot, error)
	SetExerciseOutcome(ctx context.Context, token string, exerciseID uuid.UUID, outcome models.Outcome) (*models.StatusSnapshot, error)
}

// Credentials supplies the bearer token and the signed-in user's cooldown
// length. *auth.Session satisfies it.
type Credentials interface {
	Token() string
	TrainingFrequency() int
}

// Status is one consistent view of the tracker's state.
type Status struct {
	Phase    Phase
	Snapshot models.StatusSnapshot
	// Countdown is the formatted remaining cooldown. Empty unless Phase is
	// PhaseCooldown.
	Countdown string
}

// Tracker mirrors the server's session status for one signed-in user. Every
// server response carrying a snapshot replaces the held one wholesale; no
// field survives an update on its own. A Tracker must be closed when no
// longer needed to stop its countdown ticker.
type Tracker struct {
	api   API
	creds Credentials
	log   *slog.Logger
	now   func() time.Time // stubbed in tests

	mu        sync.Mutex
	snap      models.StatusSnapshot
	countdown string
	stopWatch context.CancelFunc

	// onChange, when set, is called after every status change. Set it
	// before the first request; it runs without the tracker lock held.
	onChange func(Status)
}

// NewTracker returns a tracker with an empty snapshot. Call Refresh to load
// the server's state.
func NewTracker(api API, creds Credentials, log *slog.Logger) *Tracker {
	return &Tracker{api: api, creds: creds, log: log, now: time.Now}
}

// OnChange registers fn to run after every applied snapshot and every
// countdown tick. Only one callback is kept.
func (t *Tracker) OnChange(fn func(Status)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onChange = fn
}

// Status returns the current phase, snapshot and countdown.
func (t *Tracker) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.statusLocked()
}

func (t *Tracker) statusLocked() Status {
	return Status{Phase: t.phaseLocked(), Snapshot: t.snap, Countdown: t.countdown}
}

func (t *Tracker) phaseLocked() Phase {
	switch {
	case t.snap.ActiveSession != nil:
		return PhaseActive
	case t.snap.HasAvailableSession:
		return PhaseAvailable
	default:
		return PhaseCooldown
	}
}

// Refresh fetches the session status from the server and applies it.
func (t *Tracker) Refresh(ctx context.Context) error {
	snap, err := t.api.SessionStatus(ctx, t.creds.Token())
	if err != nil {
		return fmt.Errorf("fetching session status: %w", err)
	}
	t.apply(*snap)
	return nil
}

// Start asks the server to start a new session. On success the returned
// snapshot carries the active session with its drawn exercises.
func (t *Tracker) Start(ctx context.Context) error {
	snap, err := t.api.StartSession(ctx, t.creds.Token())
	if err != nil {
		return fmt.Errorf("starting session: %w", err)
	}
	t.apply(*snap)
	return nil
}

// Stop ends the active session. The server awards XP for concluded exercises
// and the cooldown starts from the returned snapshot's finish time.
func (t *Tracker) Stop(ctx context.Context) error {
	snap, err := t.api.StopSession(ctx, t.creds.Token())
	if err != nil {
		return fmt.Errorf("stopping session: %w", err)
	}
	t.apply(*snap)
	return nil
}

// MarkExercise records an outcome for one exercise of the active session.
func (t *Tracker) MarkExercise(ctx context.Context, exerciseID uuid.UUID, outcome models.Outcome) error {
	snap, err := t.api.SetExerciseOutcome(ctx, t.creds.Token(), exerciseID, outcome)
	if err != nil {
		return fmt.Errorf("marking exercise %s: %w", outcome, err)
	}
	t.apply(*snap)
	return nil
}

// Close stops the countdown ticker. The tracker keeps its last snapshot.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelWatchLocked()
}

// apply replaces the held snapshot with snap, recomputes the countdown and
// restarts the watcher. The previous watcher, if any, is always cancelled
// first so at most one runs.
func (t *Tracker) apply(snap models.StatusSnapshot) {
	t.mu.Lock()
	t.cancelWatchLocked()
	t.snap = snap
	t.recomputeCountdownLocked()

	// Only a running countdown needs a watcher; an already-lapsed cooldown
	// would lapse again on the first tick and loop.
	if t.phaseLocked() == PhaseCooldown && t.countdown != "" {
		ctx, cancel := context.WithCancel(context.Background())
		t.stopWatch = cancel
		go t.watch(ctx)
	}
	st := t.statusLocked()
	fn := t.onChange
	t.mu.Unlock()

	if fn != nil {
		fn(st)
	}
}

func (t *Tracker) cancelWatchLocked() {
	if t.stopWatch != nil {
		t.stopWatch()
		t.stopWatch = nil
	}
}

func (t *Tracker) recomputeCountdownLocked() {
	t.countdown = ""
	if t.phaseLocked() != PhaseCooldown || t.snap.LastFinishedAt == nil {
		return
	}
	if s, ok := Countdown(*t.snap.LastFinishedAt, t.creds.TrainingFrequency(), t.now()); ok {
		t.countdown = s
	}
}

// watch ticks once a second while the cooldown runs, updating the countdown
// and notifying the callback. When the cooldown lapses it refreshes from the
// server, which flips the snapshot to available, and exits.
func (t *Tracker) watch(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.mu.Lock()
			t.recomputeCountdownLocked()
			lapsed := t.countdown == ""
			st := t.statusLocked()
			fn := t.onChange
			t.mu.Unlock()
			if fn != nil {
				fn(st)
			}
			if lapsed {
				if err := t.Refresh(ctx); err != nil {
					t.log.Warn("refreshing session status after cooldown", "error", err)
				}
				return
			}
		}
	}
}
