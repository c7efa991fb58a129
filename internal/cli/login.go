package cli

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/claude/trainup/internal/auth"
	"github.com/claude/trainup/internal/client"
	"github.com/claude/trainup/internal/models"
)

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <phone-number>",
		Short: "Sign in with a phone number",
		Long: `Sign in to the TrainUp server with a phone number. The number is
normalized to digits, so "(11) 98888-7777" and "11988887777" are the
same account. The number is remembered locally for later commands.

If the server does not know the number, sign up first:
  trainup register --phone <number> --first-name <name> ...`,
		Args: cobra.ExactArgs(1),
		RunE: runLogin,
	}
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.session.SignIn(cmd.Context(), args[0]); err != nil {
		if errors.Is(err, auth.ErrNeedsSignUp) {
			return fmt.Errorf("no account for this number. Run \"trainup register\" first")
		}
		return err
	}

	user := a.session.User()
	if jsonOutput {
		printJSON(user)
		return nil
	}
	okLabel.Printf("Signed in as %s %s (%s)\n", user.FirstName, user.LastName, models.MaskPhone(user.PhoneNumber))
	return nil
}

func newRegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Long: `Register a new account on the TrainUp server and sign in with it.
Trainer accounts need an invite code generated by an existing trainer.

Example:
  trainup register --phone 11988887777 --first-name Ana --last-name Souza --experience <id>`,
		RunE: runRegister,
	}

	cmd.Flags().String("phone", "", "Phone number (required)")
	cmd.Flags().String("first-name", "", "First name (required)")
	cmd.Flags().String("last-name", "", "Last name (required)")
	cmd.Flags().String("experience", "", "Experience tier ID (required)")
	cmd.Flags().Bool("trainer", false, "Register as a trainer")
	cmd.Flags().String("invite-code", "", "Invite code (required with --trainer)")
	cmd.MarkFlagRequired("phone")
	cmd.MarkFlagRequired("first-name")
	cmd.MarkFlagRequired("last-name")
	cmd.MarkFlagRequired("experience")
	return cmd
}

func runRegister(cmd *cobra.Command, args []string) error {
	phone, _ := cmd.Flags().GetString("phone")
	firstName, _ := cmd.Flags().GetString("first-name")
	lastName, _ := cmd.Flags().GetString("last-name")
	experience, _ := cmd.Flags().GetString("experience")
	trainer, _ := cmd.Flags().GetBool("trainer")
	inviteCode, _ := cmd.Flags().GetString("invite-code")

	experienceID, err := uuid.Parse(experience)
	if err != nil {
		return fmt.Errorf("invalid experience ID %q: %w", experience, err)
	}
	if trainer && inviteCode == "" {
		return errors.New("--trainer requires --invite-code")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	err = a.session.SignUp(cmd.Context(), client.SignUpData{
		FirstName:    firstName,
		LastName:     lastName,
		PhoneNumber:  phone,
		ExperienceID: experienceID,
		IsTrainer:    trainer,
		InviteCode:   inviteCode,
	})
	switch {
	case errors.Is(err, auth.ErrInvalidInvite):
		return errors.New("the invite code was rejected")
	case errors.Is(err, auth.ErrPhoneRegistered):
		return errors.New("this phone number is already registered. Run \"trainup login\" instead")
	case err != nil:
		return err
	}

	// Registration does not authenticate; sign in to pick up the token.
	if err := a.session.SignIn(cmd.Context(), phone); err != nil {
		return fmt.Errorf("account created but sign-in failed: %w", err)
	}

	user := a.session.User()
	if jsonOutput {
		printJSON(user)
		return nil
	}
	okLabel.Printf("Registered %s %s (%s)\n", user.FirstName, user.LastName, models.MaskPhone(user.PhoneNumber))
	return nil
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored phone number",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.session.SignOut(); err != nil {
				return err
			}
			okLabel.Println("Signed out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAuthedApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			user := a.session.User()
			if jsonOutput {
				printJSON(user)
				return nil
			}
			role := "athlete"
			if user.IsTrainer {
				role = "trainer"
			}
			fmt.Printf("%s %s (%s)\n", user.FirstName, user.LastName, models.MaskPhone(user.PhoneNumber))
			fmt.Printf("role: %s  level: %d  xp: %d/%d\n", role, user.Level, user.CurrentXP, user.XPToNextLevel)
			return nil
		},
	}
}
