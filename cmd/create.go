package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/projctl/internal/errors"
	"github.com/firefly-engineering/projctl/internal/service"
)

var createCmd = &cobra.Command{
	Use:   "create <path>",
	Short: "Create a new project",
	Long: `Create a new project by running the configured create_command inside
<path>. The project is registered right away and shows as "creating" in the
picker until the command finishes.

Steps:
  ` + strings.Join(service.CreateSteps, "\n  "),
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

var createName string

func init() {
	createCmd.Flags().StringVarP(&createName, "name", "n", "", "Display name (default: directory name)")
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	a, err := getApp()
	if err != nil {
		return err
	}

	if a.Config.IsBigfish() {
		return errors.ValidationError("creating projects is not available for the bigfish brand")
	}

	logInfo("Creating project at %s...", args[0])

	rec, err := a.Service.Create(cmd.Context(), args[0], createName)
	if err != nil {
		if rec.Key != "" {
			logWarning("Project %s was registered as failed; remove it with: projctl rm %s", rec.Name, rec.Key)
		}
		return err
	}

	logSuccess("Created %s (%s) at %s", rec.Name, rec.Key, rec.Path)
	return nil
}
