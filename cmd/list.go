package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/projctl/internal/project"
	"github.com/firefly-engineering/projctl/internal/tui"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List registered projects",
	Long: `List registered projects, current project first and then newest first.

With --json-output the same order is printed as a JSON array.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json-output", false, "Print projects as JSON")
	rootCmd.AddCommand(listCmd)
}

// projectJSON is the JSON shape of a listed project.
type projectJSON struct {
	Key         string         `json:"key"`
	Name        string         `json:"name"`
	Path        string         `json:"path"`
	CreatedAt   int64          `json:"created_at"`
	Active      bool           `json:"active"`
	Status      project.Status `json:"status"`
	CurrentStep string         `json:"current_step,omitempty"`
	Failure     string         `json:"failure,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := getApp()
	if err != nil {
		return err
	}

	c, err := a.Service.List(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if listJSON {
		records := project.Sort(project.Records(c))
		items := make([]projectJSON, 0, len(records))
		for _, r := range records {
			item := projectJSON{
				Key:       r.Key,
				Name:      r.Name,
				Path:      r.Path,
				CreatedAt: r.CreatedAt,
				Active:    r.Active,
				Status:    project.Classify(r),
			}
			switch item.Status {
			case project.StatusProgress:
				item.CurrentStep = r.CreatingProgress.CurrentStep()
			case project.StatusFailure:
				item.Failure = r.CreatingProgress.Reason
			}
			items = append(items, item)
		}

		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal projects: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprint(out, tui.SimplePicker(c, a.Config.Brand, now()))
	return nil
}
