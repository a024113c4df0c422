// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-hunter/internal/export"
	"github.com/pdiddy/research-hunter/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved search runs or show one run's ranked results",
	Long: `History lists runs recorded with 'search --save', newest first.
With --results it prints the full ranked breakdown of a single run.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyCmd.Flags().Int64("results", 0, "show the ranked results of the given run ID")
	historyCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	runID, _ := cmd.Flags().GetInt64("results")
	jsonOut, _ := cmd.Flags().GetBool("json")

	s, err := store.Open(dataDir())
	if err != nil {
		return err
	}
	defer s.Close()

	if runID > 0 {
		results, err := s.RunResults(context.Background(), runID)
		if err != nil {
			return err
		}
		if jsonOut {
			return export.WriteJSON(os.Stdout, results)
		}
		export.FormatTable(results, os.Stdout)
		return nil
	}

	runs, err := s.ListRuns(context.Background(), limit)
	if err != nil {
		return err
	}
	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No saved runs. Use 'research-hunter search --save' to record one.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-40s  %-7s  %-4s  %s\n", "ID", "Query", "Results", "Year", "When")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 80))
	for _, r := range runs {
		query := r.Query
		if len(query) > 40 {
			query = query[:37] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-40s  %-7d  %-4d  %s\n",
			r.ID, query, r.ResultCount, r.CurrentYear, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
