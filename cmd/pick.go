package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/projctl/internal/logging"
	"github.com/firefly-engineering/projctl/internal/tui"
	"github.com/firefly-engineering/projctl/internal/watcher"
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Interactive project picker",
	Long: `Opens an interactive TUI for selecting and managing projects.

Use arrow keys or j/k to navigate, / to filter, Enter to open.

Actions:
  Enter  - Open the project (or show progress while it is being created)
  e      - Open the project in your editor
  r      - Rename the project
  d      - Remove the project from the registry (asks for confirmation)
  y      - Copy the project path
  i      - Show instructions for importing a directory
  c      - Show instructions for creating a project
  q/Esc  - Quit`,
	Args: cobra.NoArgs,
	RunE: runPick,
}

func init() {
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
	// The TUI owns the terminal, so logs go to a file.
	p := paths()
	if err := os.MkdirAll(p.StateDir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	logFile, err := os.OpenFile(p.LogPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()
	logging.Setup(verbose, jsonOutput, logFile)

	a, err := getApp()
	if err != nil {
		return err
	}

	logging.Debug("picker mode started", "database", a.Store.Path())

	w := watcher.New(a.Store.Path(), watcher.WithLogger(logging.Component("watcher")))

	result, err := tui.RunPicker(cmd.Context(), a.Service, tui.PickerOptions{
		Brand:  a.Config.Brand,
		Logger: logging.Component("projectList"),
		Watch:  w.Run,
	})
	if err != nil {
		return fmt.Errorf("picker error: %w", err)
	}

	logging.Debug("picker result", "action", result.Action)

	out := cmd.OutOrStdout()
	switch result.Action {
	case tui.ActionOpen:
		if result.Project != nil {
			logSuccess("Switched to %s (%s)", result.Project.Name, result.Project.Path)
		}

	case tui.ActionImport:
		fmt.Fprintln(out, "\nTo import an existing directory, run:")
		fmt.Fprintln(out, "  projctl add <path> [--name <name>]")

	case tui.ActionCreate:
		fmt.Fprintln(out, "\nTo create a new project, run:")
		fmt.Fprintln(out, "  projctl create <path> [--name <name>]")

	case tui.ActionQuit:
		// Just exit cleanly
	}

	return nil
}
