package cmd

import (
	"github.com/spf13/cobra"
)

var useCmd = &cobra.Command{
	Use:   "use <project>",
	Short: "Make a project the current one",
	Long: `Make a project the current one.

<project> may be a key, a key prefix, a name, or a fuzzy match on names.`,
	Args: cobra.ExactArgs(1),
	RunE: runUse,
}

func init() {
	rootCmd.AddCommand(useCmd)
}

func runUse(cmd *cobra.Command, args []string) error {
	a, rec, err := resolveProject(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if err := a.Service.SetCurrentProject(cmd.Context(), rec.Key); err != nil {
		return err
	}

	logSuccess("Switched to %s (%s)", rec.Name, rec.Path)
	return nil
}
