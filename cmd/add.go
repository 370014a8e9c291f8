package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/projctl/internal/logging"
)

var addCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Register an existing directory as a project",
	Long: `Register an existing directory as a project.

Relative paths are resolved under projects_root when it is configured,
and cannot escape it.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

var addName string

func init() {
	addCmd.Flags().StringVarP(&addName, "name", "n", "", "Display name (default: directory name)")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	a, err := getApp()
	if err != nil {
		return err
	}

	logging.Debug("importing project", "path", args[0])

	rec, err := a.Service.Import(cmd.Context(), args[0], addName)
	if err != nil {
		return err
	}

	logSuccess("Registered %s (%s) at %s", rec.Name, rec.Key, rec.Path)
	return nil
}
