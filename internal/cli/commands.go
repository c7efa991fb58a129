// Package cli implements the trainup command line client.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/claude/trainup/internal/auth"
	"github.com/claude/trainup/internal/client"
)

var (
	// Global flags
	serverURL  string
	stateDir   string
	jsonOutput bool
)

var okLabel = color.New(color.FgGreen)
var errorLabel = color.New(color.FgRed)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "trainup [command] [flags]",
	Short: "TrainUp CLI - track training sessions from the terminal",
	Long: `TrainUp CLI talks to a TrainUp server to sign in, start and stop
training sessions, mark exercises done or skipped, and manage the
exercise catalog for trainer accounts.

Examples:
  # Sign in with your phone number
  trainup login 11988887777

  # See whether you can train right now
  trainup status

  # Start a session and finish its first exercise
  trainup start
  trainup exercise finish <exercise-id>`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", os.Getenv("TRAINUP_SERVER"), "TrainUp server URL (or set TRAINUP_SERVER)")
	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", "", "directory for local state (default ~/.trainup)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output in JSON format")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newStartCmd())
	rootCmd.AddCommand(newStopCmd())
	rootCmd.AddCommand(newExerciseCmd())
	rootCmd.AddCommand(newInviteCmd())
	rootCmd.AddCommand(newUsersCmd())
	rootCmd.AddCommand(newCategoryCmd())
	rootCmd.AddCommand(newExerciseDefCmd())
	rootCmd.AddCommand(newExperienceCmd())
	rootCmd.AddCommand(newTrainingCmd())
}

// Version is set at build time via -ldflags.
var Version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("trainup", Version)
		},
	}
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		if jsonOutput {
			printJSON(map[string]string{"error": err.Error()})
		} else {
			errorLabel.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// app bundles what every command needs: the HTTP client and the local auth
// session. Close releases the state database.
type app struct {
	api     *client.Client
	session *auth.Session
	log     *slog.Logger
}

func (a *app) Close() error { return a.session.Close() }

// newApp builds the client and auth session from the global flags. The state
// database lives under --state-dir, defaulting to ~/.trainup.
func newApp() (*app, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("no server URL. Use --server or set TRAINUP_SERVER")
	}

	dir := stateDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		dir = filepath.Join(home, ".trainup")
	}

	state, err := auth.OpenStateDB(dir)
	if err != nil {
		return nil, fmt.Errorf("opening state database: %w", err)
	}

	api := client.New(serverURL)
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return &app{api: api, session: auth.NewSession(api, state), log: log}, nil
}

// newAuthedApp builds the app and resumes the stored sign-in. Commands that
// need a signed-in user go through this.
func newAuthedApp(ctx context.Context) (*app, error) {
	a, err := newApp()
	if err != nil {
		return nil, err
	}
	ok, err := a.session.Resume(ctx)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("resuming session: %w", err)
	}
	if !ok {
		a.Close()
		return nil, errors.New("not signed in. Run \"trainup login <phone>\" first")
	}
	return a, nil
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

// confirm asks a yes/no question on stdin and reports the answer. Anything
// other than "y" or "yes" counts as no.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	var answer string
	fmt.Scanln(&answer)
	return answer == "y" || answer == "Y" || answer == "yes"
}
