// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-hunter/internal/export"
	"github.com/pdiddy/research-hunter/internal/scoring"
	"github.com/pdiddy/research-hunter/internal/search"
	"github.com/pdiddy/research-hunter/internal/store"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search Semantic Scholar and export ranked papers",
	Long: `Search queries the Semantic Scholar Graph API for papers matching a
free-text query, scores each result, and writes the ranked list to the
output directory as results.csv, results.json and results.yaml.

An API failure degrades to empty outputs with a warning instead of
aborting, so pipelines downstream always find their files.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("query", "", "free-text research question (required)")
	searchCmd.Flags().Int("limit", 25, "maximum number of papers to fetch")
	searchCmd.Flags().Int("year-from", 0, "publication year range start")
	searchCmd.Flags().Int("year-to", 0, "publication year range end")
	searchCmd.Flags().String("outdir", "outputs", "directory for results files")
	searchCmd.Flags().String("scoring-config", "", "JSON scoring config path (keywords, currentYear)")
	searchCmd.Flags().Int("this-year", 0, "reference year for recency decay (default: current year)")
	searchCmd.Flags().Bool("json", false, "print ranked results as JSON instead of a table")
	searchCmd.Flags().Bool("save", false, "record this run in the local history database")
	_ = searchCmd.MarkFlagRequired("query")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query, _ := cmd.Flags().GetString("query")
	limit, _ := cmd.Flags().GetInt("limit")
	yearFrom, _ := cmd.Flags().GetInt("year-from")
	yearTo, _ := cmd.Flags().GetInt("year-to")
	outdir, _ := cmd.Flags().GetString("outdir")
	cfgPath, _ := cmd.Flags().GetString("scoring-config")
	thisYear, _ := cmd.Flags().GetInt("this-year")
	jsonOut, _ := cmd.Flags().GetBool("json")
	save, _ := cmd.Flags().GetBool("save")

	scoringCfg, err := scoring.LoadConfig(cfgPath, thisYear)
	if err != nil {
		return err
	}

	client := search.NewClient(searchConfig())
	papers, err := client.Search(context.Background(), query, search.Options{
		Limit:    limit,
		YearFrom: yearFrom,
		YearTo:   yearTo,
	}, os.Stderr)
	if err != nil {
		// Friendly failure mode: write empty outputs rather than crashing.
		fmt.Fprintf(os.Stderr, "warning: search failed: %v\n", err)
		papers = nil
	}

	scored, err := scoring.ScoreAll(papers, scoringCfg)
	if err != nil {
		return err
	}

	if jsonOut {
		if err := export.WriteJSON(os.Stdout, scored); err != nil {
			return err
		}
	} else {
		export.FormatTable(scored, os.Stdout)
	}

	if err := export.WriteOutputs(outdir, scored); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote outputs to: %s\n", outdir)

	if save {
		s, err := store.Open(dataDir())
		if err != nil {
			return err
		}
		defer s.Close()
		runID, err := s.SaveRun(context.Background(), query, limit, scoringCfg.CurrentYear, scored)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved run %d\n", runID)
	}
	return nil
}
