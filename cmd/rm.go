package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/projctl/internal/errors"
	"github.com/firefly-engineering/projctl/internal/logging"
	"github.com/firefly-engineering/projctl/internal/project"
)

var rmCmd = &cobra.Command{
	Use:     "rm <project>",
	Aliases: []string{"remove"},
	Short:   "Remove a project from the registry",
	Long: `Remove a project from the registry. Files on disk are not touched.

Asks for confirmation unless --yes is given. With --yes, <project> must be
the project's key or exact name.`,
	Args: cobra.ExactArgs(1),
	RunE: runRm,
}

var rmYes bool

func init() {
	rmCmd.Flags().BoolVarP(&rmYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(rmCmd)
}

// confirmRemove asks the user to confirm removing rec.
var confirmRemove = func(rec project.Record) (bool, error) {
	confirmed := false
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Remove %s from the registry?", rec.Name)).
		Description(rec.Path + "\nProject files are not deleted.").
		Affirmative("Remove").
		Negative("Cancel").
		Value(&confirmed).
		Run()
	return confirmed, err
}

func runRm(cmd *cobra.Command, args []string) error {
	a, rec, err := resolveProject(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	// Without a prompt, only an exact key or name may pick what to delete.
	if rmYes && args[0] != rec.Key && args[0] != rec.Name {
		return errors.ValidationError(fmt.Sprintf(
			"%q matched %s (%s) only approximately; pass its key or exact name with --yes", args[0], rec.Name, rec.Key))
	}

	if !rmYes {
		ok, err := confirmRemove(rec)
		if err != nil {
			return errors.Wrap(errors.ExitGeneralError, "confirmation failed (use --yes to skip it)", err)
		}
		if !ok {
			logInfo("Kept %s", rec.Name)
			return nil
		}
	}

	logging.Debug("removing project", "key", rec.Key)
	logInfo("Removing %s (%s) at %s", rec.Name, rec.Key, rec.Path)

	if err := a.Service.DeleteProject(cmd.Context(), rec.Key); err != nil {
		return err
	}

	logSuccess("Removed %s", rec.Name)
	return nil
}
