// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export serializes ranked scoring results. The scorer hands it an
// ordered sequence of (paper, breakdown) pairs; this package owns the
// presentation: CSV and JSON result files, a YAML run snapshot, and a
// human-readable console table.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-hunter/internal/scoring"
)

// csvColumns is the fixed column layout of a scored CSV. The breakdown
// components are all exposed so a ranking can be audited from the file alone.
var csvColumns = []string{
	"score", "relevance", "impact", "recency",
	"year", "citations", "title", "venue", "url", "matched_keywords",
}

// WriteCSV writes one row per scored paper, ranked order preserved.
func WriteCSV(w io.Writer, rows []scoring.ScoredPaper) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvColumns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.Score.Total),
			strconv.Itoa(r.Score.Relevance),
			strconv.Itoa(r.Score.Impact),
			strconv.Itoa(r.Score.Recency),
			yearField(r.Paper.Year),
			strconv.Itoa(r.Paper.CitationCount),
			r.Paper.Title,
			r.Paper.Venue,
			r.Paper.URL,
			strings.Join(r.Score.MatchedKeywords, "; "),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func yearField(year int) string {
	if year <= 0 {
		return ""
	}
	return strconv.Itoa(year)
}

// WriteJSON writes the ranked pairs as indented JSON.
func WriteJSON(w io.Writer, rows []scoring.ScoredPaper) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// WriteYAML writes the ranked pairs as a YAML document.
func WriteYAML(w io.Writer, rows []scoring.ScoredPaper) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(rows)
}

// WriteOutputs writes results.csv, results.json and results.yaml into dir,
// creating it if needed.
func WriteOutputs(dir string, rows []scoring.ScoredPaper) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	writers := []struct {
		name  string
		write func(io.Writer, []scoring.ScoredPaper) error
	}{
		{"results.csv", WriteCSV},
		{"results.json", WriteJSON},
		{"results.yaml", WriteYAML},
	}
	for _, out := range writers {
		f, err := os.Create(filepath.Join(dir, out.name))
		if err != nil {
			return fmt.Errorf("creating %s: %w", out.name, err)
		}
		if err := out.write(f, rows); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", out.name, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing %s: %w", out.name, err)
		}
	}
	return nil
}

// WriteCSVFile writes a scored CSV to path, creating parent directories.
func WriteCSVFile(path string, rows []scoring.ScoredPaper) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteCSV(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// FormatTable writes a ranked, human-readable table to w.
func FormatTable(rows []scoring.ScoredPaper, w io.Writer) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No results.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-5s  %-60s  %-4s  %-5s  %s\n",
		"Rank", "Score", "Title", "Year", "Cites", "Matched")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for i, r := range rows {
		title := r.Paper.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		matched := strings.Join(r.Score.MatchedKeywords, ", ")
		if len(matched) > 40 {
			matched = matched[:37] + "..."
		}
		fmt.Fprintf(w, "%-4d  %-5d  %-60s  %-4s  %-5d  %s\n",
			i+1, r.Score.Total, title, yearField(r.Paper.Year), r.Paper.CitationCount, matched)
	}
	fmt.Fprintf(w, "\n%d results\n", len(rows))
}
