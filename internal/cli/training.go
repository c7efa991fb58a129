package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/claude/trainup/internal/client"
)

// Training templates carry nested item slots, so create/update take the
// payload from a JSON file rather than flags.

func readTrainingFile(path string) (client.TrainingData, error) {
	var data client.TrainingData
	raw, err := os.ReadFile(path)
	if err != nil {
		return data, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return data, fmt.Errorf("parsing %s: %w", path, err)
	}
	return data, nil
}

func newTrainingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "training",
		Short: "Manage training templates",
		Long: `Manage training templates. A template names its item slots: either a
fixed exercise or a category the server draws from when a session
starts. Create and update read the template from a JSON file:

  {
    "name": "Upper body A",
    "week_day": 1,
    "experience_id": "…",
    "trainingItems": [
      {"exercise_id": "…", "series": 3, "times": 12},
      {"category_id": "…", "amount": 2, "series": 4, "times": 10}
    ]
  }`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List training templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAuthedApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			trainings, err := a.api.ListTrainings(cmd.Context(), a.session.Token())
			if err != nil {
				return wrapCatalogErr(err, "training")
			}
			if jsonOutput {
				printJSON(trainings)
				return nil
			}
			for _, tr := range trainings {
				day := "any day"
				if tr.WeekDay != nil {
					day = fmt.Sprintf("day %d", *tr.WeekDay)
				}
				fmt.Printf("%s  %s  %s  %d items\n", tr.ID, tr.Name, day, len(tr.Items))
			}
			return nil
		},
	})

	create := &cobra.Command{
		Use:   "create -f <file>",
		Short: "Create a training template from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("file")
			data, err := readTrainingFile(path)
			if err != nil {
				return err
			}
			a, err := newAuthedApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			training, err := a.api.CreateTraining(cmd.Context(), a.session.Token(), data)
			if err != nil {
				return wrapCatalogErr(err, "training")
			}
			if jsonOutput {
				printJSON(training)
				return nil
			}
			okLabel.Printf("Created training %s (%s)\n", training.Name, training.ID)
			return nil
		},
	}
	create.Flags().StringP("file", "f", "", "Path to the template JSON file")
	create.MarkFlagRequired("file")
	cmd.AddCommand(create)

	update := &cobra.Command{
		Use:   "update <id> -f <file>",
		Short: "Replace a training template from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			path, _ := cmd.Flags().GetString("file")
			data, err := readTrainingFile(path)
			if err != nil {
				return err
			}
			a, err := newAuthedApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			training, err := a.api.UpdateTraining(cmd.Context(), a.session.Token(), id, data)
			if err != nil {
				return wrapCatalogErr(err, "training")
			}
			if jsonOutput {
				printJSON(training)
				return nil
			}
			okLabel.Printf("Updated training %s\n", training.Name)
			return nil
		},
	}
	update.Flags().StringP("file", "f", "", "Path to the template JSON file")
	update.MarkFlagRequired("file")
	cmd.AddCommand(update)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a training template",
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

			if err := a.api.DeleteTraining(cmd.Context(), a.session.Token(), id); err != nil {
				return wrapCatalogErr(err, "training")
			}
			okLabel.Println("Deleted")
			return nil
		},
	})

	return cmd
}
