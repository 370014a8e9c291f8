package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/projctl/internal/project"
)

var renameCmd = &cobra.Command{
	Use:   "rename <project> <name>",
	Short: "Change a project's display name",
	Args:  cobra.ExactArgs(2),
	RunE:  runRename,
}

func init() {
	rootCmd.AddCommand(renameCmd)
}

func runRename(cmd *cobra.Command, args []string) error {
	a, rec, err := resolveProject(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if err := a.Service.EditProject(cmd.Context(), project.Edit{Key: rec.Key, Name: args[1]}); err != nil {
		return err
	}

	logSuccess("Renamed %s to %s", rec.Name, args[1])
	return nil
}
