// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-hunter/internal/corpus"
	"github.com/pdiddy/research-hunter/internal/export"
	"github.com/pdiddy/research-hunter/internal/scoring"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a local JSON corpus offline and write a ranked CSV",
	Long: `Analyze runs fully offline on a locally-stored JSON corpus of paper
metadata (a JSON array or a {"data": [...]} envelope). Every record gets the
same deterministic score as online search, so a harvested collection can be
prioritized for reading without any network access.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("input", "", "path to JSON corpus (required)")
	analyzeCmd.Flags().String("output", "outputs/scored_papers.csv", "path for the scored CSV")
	analyzeCmd.Flags().String("scoring-config", "", "JSON scoring config path (keywords, currentYear)")
	analyzeCmd.Flags().Int("this-year", 0, "reference year for recency decay (default: current year)")
	_ = analyzeCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	cfgPath, _ := cmd.Flags().GetString("scoring-config")
	thisYear, _ := cmd.Flags().GetInt("this-year")

	scoringCfg, err := scoring.LoadConfig(cfgPath, thisYear)
	if err != nil {
		return err
	}

	papers, stats, err := corpus.Load(input, os.Stderr)
	if err != nil {
		return err
	}
	if stats.Skipped > 0 {
		fmt.Fprintf(os.Stderr, "warning: skipped %d of %d corpus entries\n", stats.Skipped, stats.Total)
	}

	scored, err := scoring.ScoreAll(papers, scoringCfg)
	if err != nil {
		return err
	}

	if err := export.WriteCSVFile(output, scored); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote scored CSV: %s (%d papers)\n", output, len(scored))
	return nil
}
