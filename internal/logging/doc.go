// Package logging provides logging utilities for projctl.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("loading projects", "db", path)
//	log := logging.Component("projectList")
//	log.Debug("dispatch", "action", action, "key", key)
//
// Components that outlive a single call (the dispatcher, the picker) take an
// injected *slog.Logger built with Component rather than using the global.
//
// # User Output
//
//	logging.UserInfo("No projects registered yet")
//	logging.UserSuccess("Project %s deleted", name)
//	logging.UserWarning("Editor %s not found", editor)
//	logging.UserError("Failed to open project: %v", err)
//
// Output destinations (see SetUserOutput):
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
package logging
