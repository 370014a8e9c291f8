package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/projctl/internal/app"
	"github.com/firefly-engineering/projctl/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
	configDir  string
	stateDir   string
)

var rootCmd = &cobra.Command{
	Use:   "projctl",
	Short: "Project registry and picker",
	Long: `projctl keeps a registry of your local projects and lets you switch
between them.

Each project has:
  - A stable key and an editable display name
  - A directory on disk
  - A creation status (ready, creating, or failed)

Run "projctl pick" for the interactive picker.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
		logging.SetUserOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

// Execute runs the root command. Interrupts cancel the command's context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	defer app.ResetDefault()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Configuration directory (default: $XDG_CONFIG_HOME/projctl)")
	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", "", "State directory (default: $XDG_STATE_HOME/projctl)")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
)
