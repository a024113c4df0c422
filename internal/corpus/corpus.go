// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus loads a locally-stored JSON collection of paper metadata
// for fully-offline analysis. The loader is deliberately tolerant: a corpus
// harvested from mixed sources rarely has every field, so malformed entries
// are skipped with a warning and missing fields fall back to zero values —
// the scorer defines the fallback semantics for those.
package corpus

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pdiddy/research-hunter/pkg/types"
)

// Stats counts what the loader encountered, so degraded input is
// observable without ever aborting the batch.
type Stats struct {
	Total            int
	Skipped          int
	MissingTitle     int
	MissingYear      int
	MissingCitations int
}

// rawPaper accepts the loose shapes found in harvested corpora: authors as
// plain strings or {name: ...} objects, doi standing in for url, numeric
// fields absent or null.
type rawPaper struct {
	ID            string          `json:"id"`
	PaperID       string          `json:"paperId"`
	Title         string          `json:"title"`
	Abstract      string          `json:"abstract"`
	Venue         string          `json:"venue"`
	Year          *int            `json:"year"`
	CitationCount *int            `json:"citationCount"`
	URL           string          `json:"url"`
	DOI           string          `json:"doi"`
	Authors       json.RawMessage `json:"authors"`
}

// Load reads a JSON corpus from path: either a bare array of paper objects
// or a {"data": [...]} envelope (the shape Semantic Scholar responses are
// saved in). Entries that are not objects are skipped with a warning to w.
func Load(path string, w io.Writer) ([]types.Paper, Stats, error) {
	if w == nil {
		w = io.Discard
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("reading corpus: %w", err)
	}
	entries, err := corpusEntries(data)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("%s: %w", path, err)
	}

	var stats Stats
	papers := make([]types.Paper, 0, len(entries))
	for i, entry := range entries {
		stats.Total++

		var raw rawPaper
		if err := json.Unmarshal(entry, &raw); err != nil {
			stats.Skipped++
			fmt.Fprintf(w, "warning: corpus entry %d is not a paper object, skipping: %v\n", i, err)
			continue
		}

		p := raw.toPaper()
		if p.Title == "" {
			stats.MissingTitle++
			fmt.Fprintf(w, "warning: corpus entry %d has no title\n", i)
		}
		if p.Year == 0 {
			stats.MissingYear++
		}
		if raw.CitationCount == nil {
			stats.MissingCitations++
		}
		papers = append(papers, p)
	}
	return papers, stats, nil
}

// corpusEntries unwraps the optional {"data": [...]} envelope and splits
// the array into raw entries.
func corpusEntries(data []byte) ([]json.RawMessage, error) {
	var envelope struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Data != nil {
		return envelope.Data, nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("corpus must be a JSON array of papers or a {\"data\": [...]} object: %w", err)
	}
	return entries, nil
}

func (r rawPaper) toPaper() types.Paper {
	p := types.Paper{
		Title:    r.Title,
		Abstract: r.Abstract,
		Venue:    r.Venue,
		URL:      r.URL,
		Authors:  parseAuthors(r.Authors),
		Source:   "corpus",
	}
	if p.URL == "" {
		p.URL = r.DOI
	}
	p.ID = r.ID
	if p.ID == "" {
		p.ID = r.PaperID
	}
	if r.Year != nil && *r.Year > 0 {
		p.Year = *r.Year
	}
	if r.CitationCount != nil && *r.CitationCount > 0 {
		p.CitationCount = *r.CitationCount
	}
	return p
}

// parseAuthors accepts ["Ada Lovelace"] and [{"name": "Ada Lovelace"}];
// anything else yields no authors.
func parseAuthors(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var names []string
	if err := json.Unmarshal(raw, &names); err == nil {
		return compactStrings(names)
	}

	var objs []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &objs); err == nil {
		names = names[:0]
		for _, o := range objs {
			names = append(names, o.Name)
		}
		return compactStrings(names)
	}
	return nil
}

func compactStrings(in []string) []string {
	var out []string
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
