package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/claude/trainup/internal/client"
	"github.com/claude/trainup/internal/models"
	"github.com/claude/trainup/internal/trainsession"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current training session status",
		Long: `Show whether a training session is running, a new one can start, or
the cooldown is still counting down. With --watch the countdown is
redrawn every second until interrupted.`,
		RunE: runStatus,
	}
	cmd.Flags().Bool("watch", false, "Redraw the countdown every second")
	return cmd
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := newAuthedApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	tracker := trainsession.NewTracker(a.api, a.session, a.log)
	defer tracker.Close()

	watch, _ := cmd.Flags().GetBool("watch")
	done := make(chan struct{}, 1)
	if watch && !jsonOutput {
		tracker.OnChange(func(st trainsession.Status) {
			if st.Phase != trainsession.PhaseCooldown {
				select {
				case done <- struct{}{}:
				default:
				}
				return
			}
			fmt.Print("\r\033[K")
			printStatusLine(st)
		})
	}

	if err := tracker.Refresh(cmd.Context()); err != nil {
		return err
	}

	st := tracker.Status()
	if jsonOutput {
		printJSON(st.Snapshot)
		return nil
	}
	if !watch {
		printStatus(st)
		return nil
	}
	if st.Phase != trainsession.PhaseCooldown {
		printStatus(st)
		return nil
	}

	// The tracker's watcher redraws via OnChange until the cooldown lapses
	// or the user interrupts.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)
	select {
	case <-sig:
		fmt.Println()
	case <-cmd.Context().Done():
		fmt.Println()
	case <-done:
		fmt.Println()
		printStatus(tracker.Status())
	}
	return nil
}

func printStatus(st trainsession.Status) {
	switch st.Phase {
	case trainsession.PhaseActive:
		okLabel.Println("Session in progress")
		for _, ex := range st.Snapshot.ActiveSession.Exercises {
			marker := " "
			switch ex.State() {
			case models.ExerciseConcluded:
				marker = "x"
			case models.ExerciseSkipped:
				marker = "-"
			}
			name := ex.ExerciseID.String()
			if ex.Exercise != nil {
				name = ex.Exercise.Name
			}
			fmt.Printf("  [%s] %s  %dx%d  (%s)\n", marker, name, ex.Series, ex.Times, ex.ExerciseID)
		}
	case trainsession.PhaseAvailable:
		okLabel.Println("A training session is available. Run \"trainup start\".")
	case trainsession.PhaseCooldown:
		printStatusLine(st)
		fmt.Println()
	}
}

func printStatusLine(st trainsession.Status) {
	if st.Countdown == "" {
		fmt.Print("Cooldown over. Run \"trainup status\" to check availability.")
		return
	}
	fmt.Printf("Next session in %s", st.Countdown)
}

func newStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start a training session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAuthedApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if !jsonOutput && !confirm("Start a training session?") {
				return nil
			}

			tracker := trainsession.NewTracker(a.api, a.session, a.log)
			defer tracker.Close()

			err = tracker.Start(cmd.Context())
			switch {
			case errors.Is(err, client.ErrConflict):
				return errors.New("a training session is already active")
			case errors.Is(err, client.ErrNotFound):
				return errors.New("no training session available right now")
			case err != nil:
				return err
			}

			st := tracker.Status()
			if jsonOutput {
				printJSON(st.Snapshot)
				return nil
			}
			printStatus(st)
			return nil
		},
	}
}

func newStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Finish the active training session",
		Long: `Finish the active training session. XP is awarded for every exercise
marked as finished, and the cooldown until the next session starts
counting from now.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAuthedApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if !jsonOutput && !confirm("Finish the active session?") {
				return nil
			}

			tracker := trainsession.NewTracker(a.api, a.session, a.log)
			defer tracker.Close()

			err = tracker.Stop(cmd.Context())
			switch {
			case errors.Is(err, client.ErrNotFound):
				return errors.New("no active session to stop")
			case err != nil:
				return err
			}

			if jsonOutput {
				printJSON(tracker.Status().Snapshot)
				return nil
			}
			okLabel.Println("Session finished")
			printStatus(tracker.Status())
			return nil
		},
	}
}

func newExerciseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exercise finish|skip|restore <exercise-id>",
		Short: "Mark an exercise of the active session",
		Long: `Mark an exercise of the active session as finished or skipped, or
restore it to pending. Restoring only works on an exercise that was
previously marked.`,
		Args: cobra.ExactArgs(2),
		RunE: runExercise,
	}
	return cmd
}

func runExercise(cmd *cobra.Command, args []string) error {
	outcome, err := models.ParseOutcome(args[0])
	if err != nil {
		return err
	}
	exerciseID, err := uuid.Parse(args[1])
	if err != nil {
		return fmt.Errorf("invalid exercise ID %q: %w", args[1], err)
	}

	a, err := newAuthedApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	tracker := trainsession.NewTracker(a.api, a.session, a.log)
	defer tracker.Close()

	err = tracker.MarkExercise(cmd.Context(), exerciseID, outcome)
	switch {
	case errors.Is(err, client.ErrNotFound):
		return errors.New("exercise not found in the active session")
	case errors.Is(err, client.ErrConflict):
		return errors.New("the exercise is already in that state")
	case err != nil:
		return err
	}

	st := tracker.Status()
	if jsonOutput {
		printJSON(st.Snapshot)
		return nil
	}
	printStatus(st)
	return nil
}
