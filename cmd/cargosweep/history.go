package main

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nao1215/cargosweep/internal/config"
	"github.com/nao1215/cargosweep/internal/database"
)

// NewHistoryCmd creates the history command.
// It reads past runs from the history database recorded by 'clean'.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past cargosweep runs",
		Long: `History lists past runs recorded in the history database, newest first,
with the space each run reclaimed.

Examples:
  # List the 20 most recent runs
  cargosweep history

  # Show per-project results of run 5
  cargosweep history --run-id 5

  # Machine-readable output
  cargosweep history --json`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "l", 20, "Maximum number of runs to list")
	cmd.Flags().Int64P("run-id", "i", 0, "Show per-project results of a specific run")
	cmd.Flags().BoolP("json", "j", false, "Output in JSON format")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	runID, err := cmd.Flags().GetInt64("run-id")
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	hdb, err := database.Open(config.XDGDataDir(), database.ReadOnlyOptions())
	if err != nil {
		return fmt.Errorf("no run history available (run 'cargosweep clean' first): %w", err)
	}
	defer hdb.Close()

	if runID > 0 {
		return showRun(cmd, hdb, runID, asJSON)
	}
	return listRuns(cmd, hdb, limit, asJSON)
}

// listRuns prints the most recent runs.
func listRuns(cmd *cobra.Command, hdb *database.HistoryDB, limit int, asJSON bool) error {
	runs, err := hdb.ListRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if asJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%-4s  %-16s  %-20s  %8s  %6s  %10s  %s\n",
		"ID", "DATE", "SCOPE", "PROJECTS", "FAILED", "SAVED", "ROOT")
	for _, run := range runs {
		fmt.Fprintf(cmd.OutOrStdout(), "%-4d  %-16s  %-20s  %8d  %6d  %10s  %s\n",
			run.ID,
			run.StartedAt.Local().Format("2006-01-02 15:04"),
			run.Scope.Label(),
			run.Projects,
			run.Failed,
			humanize.IBytes(run.TotalBytes),
			run.Root,
		)
	}
	return nil
}

// showRun prints the per-project results of one run.
func showRun(cmd *cobra.Command, hdb *database.HistoryDB, runID int64, asJSON bool) error {
	results, err := hdb.GetRunResults(cmd.Context(), runID)
	if err != nil {
		if database.IsNotFound(err) {
			return fmt.Errorf("run %d not found (use 'cargosweep history' to list runs)", runID)
		}
		return err
	}

	if asJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	}

	for _, result := range results {
		if result.Failed() {
			fmt.Fprintf(cmd.OutOrStdout(), "  %-8s  %s  %s\n", result.Action, result.Path, result.Error)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %-8s  %s  %s\n", result.Action, result.Path, humanize.IBytes(result.Bytes))
	}
	return nil
}
