package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/claude/trainup/internal/client"
	"github.com/claude/trainup/internal/models"
)

func newInviteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invite",
		Short: "Generate a trainer invite code",
		Long: `Generate a single-use invite code another person can use to register
a trainer account. Codes expire after a week. Trainer accounts only.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAuthedApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			code, err := a.api.GenerateInviteCode(cmd.Context(), a.session.Token())
			if errors.Is(err, client.ErrForbidden) {
				return errors.New("only trainers can generate invite codes")
			}
			if err != nil {
				return err
			}

			if jsonOutput {
				printJSON(map[string]int{"code": code})
				return nil
			}
			fmt.Printf("Invite code: %06d\n", code)
			return nil
		},
	}
}

func newUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List registered users",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAuthedApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			users, err := a.api.ListUsers(cmd.Context(), a.session.Token())
			if err != nil {
				return err
			}

			if jsonOutput {
				printJSON(users)
				return nil
			}
			for _, u := range users {
				role := ""
				if u.IsTrainer {
					role = "  trainer"
				}
				fmt.Printf("%s  %s %s  %s  level %d%s\n",
					u.ID, u.FirstName, u.LastName, models.MaskPhone(u.PhoneNumber), u.Level, role)
			}
			return nil
		},
	}
}
