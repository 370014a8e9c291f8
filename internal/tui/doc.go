// Package tui provides terminal user interface components for projctl.
//
// This package uses the Bubble Tea framework for the interactive project
// picker launched by `projctl pick`.
//
// # Project Picker
//
// The picker lists registered projects, active project first and then
// newest first, and routes every action through a dispatch.Dispatcher:
//
//	opts := tui.PickerOptions{Brand: cfg.Brand, Logger: logging.Component("projectList"), Watch: w.Run}
//	result, err := tui.RunPicker(ctx, svc, opts)
//	switch result.Action {
//	case tui.ActionOpen:
//	    // result.Project is now the current project
//	case tui.ActionImport, tui.ActionCreate:
//	    // Point the user at `projctl add` / `projctl create`
//	case tui.ActionQuit:
//	    // Exit
//	}
//
// # Picker Features
//
//   - Status tags for projects still being created or whose creation failed
//   - Enter opens a project, or shows creation progress while it is running
//   - e (editor) and r (rename) for ready projects
//   - d deletes after an inline y/n confirmation
//   - y copies the project path to the clipboard
//   - i (import) and c (create; not offered by the bigfish brand)
//   - Reloads whenever Watch reports a store change
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - UI components
//   - github.com/charmbracelet/lipgloss - Styling
package tui
