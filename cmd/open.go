package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/projctl/internal/project"
)

var openCmd = &cobra.Command{
	Use:   "open <project>",
	Short: "Open a project in your editor",
	Long: `Open a project in your editor.

The editor comes from the config file, then $VISUAL, then $EDITOR, and
defaults to "code".`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	a, rec, err := resolveProject(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if project.Classify(rec) != project.StatusSuccess {
		logWarning("%s is %s", rec.Name, formatStatus(rec))
	}

	return a.Service.OpenInEditor(cmd.Context(), rec.Key)
}
