package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history <project>",
	Short: "Display the activity log of a project",
	Long: `Display the activity log of a project: registration, creation,
renames, opens and editor launches, oldest first.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

var (
	historyJSON  bool
	historyLimit int
)

func init() {
	historyCmd.Flags().BoolVar(&historyJSON, "json-output", false, "Output events as JSON lines")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "Show only the last N events")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	a, rec, err := resolveProject(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	events, err := a.Service.History(rec.Key, historyLimit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(events) == 0 {
		logInfo("No activity recorded for %s", rec.Name)
		return nil
	}

	out := cmd.OutOrStdout()
	for _, e := range events {
		if historyJSON {
			data, err := json.Marshal(e)
			if err != nil {
				return fmt.Errorf("failed to marshal event: %w", err)
			}
			fmt.Fprintln(out, string(data))
		} else {
			ts := e.Timestamp.Local().Format("2006-01-02 15:04:05")
			if e.Details != "" {
				fmt.Fprintf(out, "[%s] %-13s %s (%s)\n", ts, e.Type, rec.Name, e.Details)
			} else {
				fmt.Fprintf(out, "[%s] %-13s %s\n", ts, e.Type, rec.Name)
			}
		}
	}

	return nil
}
