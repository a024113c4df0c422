// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scoring

import (
	"encoding/json"
	"fmt"
	"os"
)

// Document is the on-disk JSON shape of a user-supplied scoring config:
//
//	{"keywords": {"emotion regulation": 18, ...}, "currentYear": 2026}
//
// Absent fields fall back to the built-in defaults. An optional
// "impactBuckets" list overrides the citation bucket table.
type Document struct {
	Keywords      map[string]int `json:"keywords"`
	CurrentYear   int            `json:"currentYear"`
	ImpactBuckets []ImpactBucket `json:"impactBuckets,omitempty"`
	DecayPerYear  int            `json:"decayPerYear,omitempty"`
}

// ParseConfig builds a validated Config from a JSON document.
func ParseConfig(data []byte) (Config, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Config{}, fmt.Errorf("parsing scoring config: %w", err)
	}

	cfg, err := NewConfig(doc.Keywords, doc.CurrentYear)
	if err != nil {
		return Config{}, err
	}
	cfg.ImpactBuckets = doc.ImpactBuckets
	cfg.DecayPerYear = doc.DecayPerYear
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a JSON scoring config from path. An empty path returns
// the default config anchored at currentYear.
func LoadConfig(path string, currentYear int) (Config, error) {
	if path == "" {
		return NewConfig(nil, currentYear)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading scoring config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	// The flag wins over the document so runs stay reproducible from the
	// command line alone.
	if currentYear != 0 {
		cfg.CurrentYear = currentYear
	}
	return cfg, nil
}
