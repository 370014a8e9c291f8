// Package config provides configuration types and loading for projctl.
//
// # Configuration File
//
// The user configuration lives in <ConfigDir>/config.toml (or config.yaml):
//
//	brand = "umi"                      # or "bigfish"
//	database = "projects.db"           # relative to StateDir
//	editor = "code --reuse-window"     # falls back to $VISUAL, $EDITOR, code
//	projects_root = "/home/me/src"     # base for relative paths given to add/create
//	create_command = "npm create umi"  # scaffold command for projctl create
//
// A missing file is not an error; Default is used.
//
// # Paths
//
//	ConfigDir  $XDG_CONFIG_HOME/projctl
//	StateDir   $XDG_STATE_HOME/projctl (database, picker log)
package config
