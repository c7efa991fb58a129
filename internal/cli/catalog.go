package cli

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/claude/trainup/internal/client"
)

// The catalog commands below are trainer-only; the server answers 403 for
// athlete accounts.

// wrapCatalogErr turns the API sentinels into messages that make sense at
// the terminal.
func wrapCatalogErr(err error, kind string) error {
	switch {
	case errors.Is(err, client.ErrForbidden):
		return fmt.Errorf("only trainers can manage the %s catalog", kind)
	case errors.Is(err, client.ErrConflict):
		return fmt.Errorf("a %s with that name already exists", kind)
	case errors.Is(err, client.ErrNotFound):
		return fmt.Errorf("%s not found", kind)
	}
	return err
}

func parseID(arg string) (uuid.UUID, error) {
	id, err := uuid.Parse(arg)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid ID %q: %w", arg, err)
	}
	return id, nil
}

func newCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage exercise categories",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAuthedApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			categories, err := a.api.ListCategories(cmd.Context(), a.session.Token())
			if err != nil {
				return wrapCatalogErr(err, "category")
			}
			if jsonOutput {
				printJSON(categories)
				return nil
			}
			for _, c := range categories {
				fmt.Printf("%s  %s\n", c.ID, c.Name)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAuthedApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			category, err := a.api.CreateCategory(cmd.Context(), a.session.Token(), args[0])
			if err != nil {
				return wrapCatalogErr(err, "category")
			}
			if jsonOutput {
				printJSON(category)
				return nil
			}
			okLabel.Printf("Created category %s (%s)\n", category.Name, category.ID)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "update <id> <name>",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := newAuthedApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			category, err := a.api.UpdateCategory(cmd.Context(), a.session.Token(), id, args[1])
			if err != nil {
				return wrapCatalogErr(err, "category")
			}
			if jsonOutput {
				printJSON(category)
				return nil
			}
			okLabel.Printf("Renamed category to %s\n", category.Name)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := newAuthedApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.api.DeleteCategory(cmd.Context(), a.session.Token(), id); err != nil {
				return wrapCatalogErr(err, "category")
			}
			okLabel.Println("Deleted")
			return nil
		},
	})

	return cmd
}

func newExperienceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "experience",
		Short: "Manage experience tiers",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List experience tiers",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAuthedApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			tiers, err := a.api.ListExperiences(cmd.Context(), a.session.Token())
			if err != nil {
				return wrapCatalogErr(err, "experience tier")
			}
			if jsonOutput {
				printJSON(tiers)
				return nil
			}
			for _, e := range tiers {
				fmt.Printf("%s  %s (level %d)\n", e.ID, e.Name, e.Level)
			}
			return nil
		},
	})

	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an experience tier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, _ := cmd.Flags().GetInt("level")

			a, err := newAuthedApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			tier, err := a.api.CreateExperience(cmd.Context(), a.session.Token(), client.ExperienceData{
				Name:  args[0],
				Level: level,
			})
			if err != nil {
				return wrapCatalogErr(err, "experience tier")
			}
			if jsonOutput {
				printJSON(tier)
				return nil
			}
			okLabel.Printf("Created tier %s (level %d)\n", tier.Name, tier.Level)
			return nil
		},
	}
	create.Flags().Int("level", 1, "Position in the progression ladder")
	cmd.AddCommand(create)

	update := &cobra.Command{
		Use:   "update <id> <name>",
		Short: "Update an experience tier",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			level, _ := cmd.Flags().GetInt("level")

			a, err := newAuthedApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			tier, err := a.api.UpdateExperience(cmd.Context(), a.session.Token(), id, client.ExperienceData{
				Name:  args[1],
				Level: level,
			})
			if err != nil {
				return wrapCatalogErr(err, "experience tier")
			}
			if jsonOutput {
				printJSON(tier)
				return nil
			}
			okLabel.Printf("Updated tier %s (level %d)\n", tier.Name, tier.Level)
			return nil
		},
	}
	update.Flags().Int("level", 1, "Position in the progression ladder")
	cmd.AddCommand(update)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an experience tier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := newAuthedApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.api.DeleteExperience(cmd.Context(), a.session.Token(), id); err != nil {
				return wrapCatalogErr(err, "experience tier")
			}
			okLabel.Println("Deleted")
			return nil
		},
	})

	return cmd
}

func exerciseDataFromFlags(cmd *cobra.Command, name string) (client.ExerciseData, error) {
	xp, _ := cmd.Flags().GetInt("xp")
	category, _ := cmd.Flags().GetString("category")
	minExp, _ := cmd.Flags().GetString("min-experience")
	maxExp, _ := cmd.Flags().GetString("max-experience")

	data := client.ExerciseData{Name: name, XPAmount: xp}

	categoryID, err := parseID(category)
	if err != nil {
		return data, err
	}
	data.CategoryID = categoryID

	if minExp != "" {
		id, err := parseID(minExp)
		if err != nil {
			return data, err
		}
		data.MinExperienceID = &id
	}
	if maxExp != "" {
		id, err := parseID(maxExp)
		if err != nil {
			return data, err
		}
		data.MaxExperienceID = &id
	}
	return data, nil
}

func addExerciseDefFlags(cmd *cobra.Command) {
	cmd.Flags().Int("xp", 0, "XP awarded when the exercise is finished")
	cmd.Flags().String("category", "", "Category ID (required)")
	cmd.Flags().String("min-experience", "", "Lowest tier the exercise is drawn for")
	cmd.Flags().String("max-experience", "", "Highest tier the exercise is drawn for")
	cmd.MarkFlagRequired("category")
}

func newExerciseDefCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exercise-def",
		Short: "Manage exercise definitions",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List exercise definitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAuthedApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			exercises, err := a.api.ListExercises(cmd.Context(), a.session.Token())
			if err != nil {
				return wrapCatalogErr(err, "exercise")
			}
			if jsonOutput {
				printJSON(exercises)
				return nil
			}
			for _, e := range exercises {
				fmt.Printf("%s  %s  %d xp\n", e.ID, e.Name, e.XPAmount)
			}
			return nil
		},
	})

	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an exercise definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := exerciseDataFromFlags(cmd, args[0])
			if err != nil {
				return err
			}
			a, err := newAuthedApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			exercise, err := a.api.CreateExercise(cmd.Context(), a.session.Token(), data)
			if err != nil {
				return wrapCatalogErr(err, "exercise")
			}
			if jsonOutput {
				printJSON(exercise)
				return nil
			}
			okLabel.Printf("Created exercise %s (%s)\n", exercise.Name, exercise.ID)
			return nil
		},
	}
	addExerciseDefFlags(create)
	cmd.AddCommand(create)

	update := &cobra.Command{
		Use:   "update <id> <name>",
		Short: "Update an exercise definition",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			data, err := exerciseDataFromFlags(cmd, args[1])
			if err != nil {
				return err
			}
			a, err := newAuthedApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			exercise, err := a.api.UpdateExercise(cmd.Context(), a.session.Token(), id, data)
			if err != nil {
				return wrapCatalogErr(err, "exercise")
			}
			if jsonOutput {
				printJSON(exercise)
				return nil
			}
			okLabel.Printf("Updated exercise %s\n", exercise.Name)
			return nil
		},
	}
	addExerciseDefFlags(update)
	cmd.AddCommand(update)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an exercise definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := newAuthedApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.api.DeleteExercise(cmd.Context(), a.session.Token(), id); err != nil {
				return wrapCatalogErr(err, "exercise")
			}
			okLabel.Println("Deleted")
			return nil
		},
	})

	return cmd
}
