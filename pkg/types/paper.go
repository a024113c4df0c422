// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the research-hunter
// pipeline: the unified paper record produced by the online and offline
// sources, and the per-stage configuration structs.
package types

import "strings"

// Paper holds the metadata for a single candidate paper. Both sources — the
// Semantic Scholar client and the offline corpus loader — materialize into
// this one shape, which is what lets online search and offline analysis
// share a single scoring path.
//
// Optional fields carry zero values when the source did not supply them:
// empty strings for text, 0 for Year (meaning unknown) and CitationCount.
type Paper struct {
	// ID is the canonical identifier from the source: arXiv ID, then DOI,
	// then the provider's own paper ID. Opaque to scoring.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// Title is the paper title, possibly empty.
	Title string `json:"title" yaml:"title"`

	// Abstract is the paper abstract or summary, possibly empty.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Venue is the publication venue name, possibly empty.
	Venue string `json:"venue,omitempty" yaml:"venue,omitempty"`

	// Year is the publication year; 0 means unknown.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// CitationCount is the citation count reported by the source; missing
	// counts load as 0.
	CitationCount int `json:"citationCount,omitempty" yaml:"citation_count,omitempty"`

	// URL points at the paper landing page or DOI resolver. Opaque to scoring.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Authors lists author names in source order. Opaque to scoring.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Source identifies which backend produced the record
	// (e.g. "semantic_scholar", "corpus").
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
}

// AuthorsLine returns the authors joined with commas, for tabular export.
func (p Paper) AuthorsLine() string {
	return strings.Join(p.Authors, ", ")
}
