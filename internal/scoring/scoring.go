// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scoring assigns each paper a transparent 0-100 score built from
// three additive components: relevance (0-60, keyword presence), impact
// (0-20, bucketed citation count) and recency (0-20, linear decay of
// publication age). Scoring is a pure function of (Paper, Config): no I/O,
// no shared state, identical inputs always produce identical output.
package scoring

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/research-hunter/pkg/types"
)

// Component caps. Total is their sum, so it lies in 0-100.
const (
	RelevanceCap = 60
	ImpactCap    = 20
	RecencyCap   = 20
)

// DefaultDecayPerYear is the recency points lost per year of age, yielding
// the documented curve: current year 20, five years old 10, ten or more 0.
const DefaultDecayPerYear = 2

// ErrInvalidConfig marks configuration-validation failures. A config that
// fails validation must not score any record.
var ErrInvalidConfig = errors.New("invalid scoring config")

// ImpactBucket maps a minimum citation count to impact points. Buckets are
// matched highest threshold first, so a table sorted descending by
// MinCitations gives inclusive-lower/exclusive-upper ranges.
type ImpactBucket struct {
	MinCitations int `json:"minCitations" yaml:"min_citations"`
	Points       int `json:"points" yaml:"points"`
}

// DefaultImpactBuckets returns the fixed citation bucket table:
// 0 → 0, 1-9 → 2, 10-19 → 5, 20-49 → 8, 50-99 → 11, 100-199 → 14,
// 200-499 → 17, 500+ → 20.
func DefaultImpactBuckets() []ImpactBucket {
	return []ImpactBucket{
		{MinCitations: 500, Points: 20},
		{MinCitations: 200, Points: 17},
		{MinCitations: 100, Points: 14},
		{MinCitations: 50, Points: 11},
		{MinCitations: 20, Points: 8},
		{MinCitations: 10, Points: 5},
		{MinCitations: 1, Points: 2},
	}
}

// DefaultKeywordWeights returns the built-in keyword table. Callers own the
// table they pass to NewConfig; this is a fresh copy every call, never a
// shared process-wide map.
func DefaultKeywordWeights() map[string]int {
	return map[string]int{
		// Multi-word, specific concepts weigh highest.
		"emotion regulation":              18,
		"affective computing":             18,
		"ecological momentary assessment": 18,
		"digital mental health":           16,
		"experience sampling":             14,
		// Medium.
		"resilience":    10,
		"mental health": 10,
		"wearable":      8,
		"multimodal":    8,
		// Generic.
		"emotion": 3,
	}
}

// Config holds the scoring parameters. Construct it with NewConfig so the
// keyword table is normalized and validated once, not on every record.
type Config struct {
	// KeywordWeights maps a lowercase keyword to its positive relevance
	// weight. A paper matching keywords whose weights sum past RelevanceCap
	// is clamped, not rescaled.
	KeywordWeights map[string]int `json:"keywords" yaml:"keywords"`

	// CurrentYear anchors recency decay. Injectable so runs are reproducible.
	CurrentYear int `json:"currentYear" yaml:"current_year"`

	// ImpactBuckets overrides the citation bucket table; nil means the
	// default table.
	ImpactBuckets []ImpactBucket `json:"impactBuckets,omitempty" yaml:"impact_buckets,omitempty"`

	// DecayPerYear overrides the recency decay slope; 0 means the default.
	DecayPerYear int `json:"decayPerYear,omitempty" yaml:"decay_per_year,omitempty"`
}

// NewConfig returns a validated Config. A nil weights map selects the
// built-in table; a currentYear of 0 selects the real current year. Keys
// are folded to lowercase and trimmed; when two keys fold to the same
// keyword the one later in sorted order wins, so the result does not
// depend on map iteration order.
func NewConfig(weights map[string]int, currentYear int) (Config, error) {
	if weights == nil {
		weights = DefaultKeywordWeights()
	}
	if currentYear == 0 {
		currentYear = time.Now().UTC().Year()
	}

	folded := make(map[string]int, len(weights))
	keys := make([]string, 0, len(weights))
	for k := range weights {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		folded[strings.ToLower(strings.TrimSpace(k))] = weights[k]
	}

	cfg := Config{KeywordWeights: folded, CurrentYear: currentYear}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the config once, before any record is scored. Per-record
// input is never a validation concern: every record field has a defined
// fallback.
func (c Config) Validate() error {
	if len(c.KeywordWeights) == 0 {
		return fmt.Errorf("%w: no keywords configured", ErrInvalidConfig)
	}
	for kw, w := range c.KeywordWeights {
		if strings.TrimSpace(kw) == "" {
			return fmt.Errorf("%w: empty keyword", ErrInvalidConfig)
		}
		if w <= 0 {
			return fmt.Errorf("%w: keyword %q has non-positive weight %d", ErrInvalidConfig, kw, w)
		}
	}
	if c.CurrentYear < 0 {
		return fmt.Errorf("%w: negative current year %d", ErrInvalidConfig, c.CurrentYear)
	}
	if c.DecayPerYear < 0 {
		return fmt.Errorf("%w: negative decay per year %d", ErrInvalidConfig, c.DecayPerYear)
	}
	for _, b := range c.ImpactBuckets {
		if b.MinCitations < 0 {
			return fmt.Errorf("%w: impact bucket with negative threshold %d", ErrInvalidConfig, b.MinCitations)
		}
		if b.Points < 0 || b.Points > ImpactCap {
			return fmt.Errorf("%w: impact bucket points %d outside 0-%d", ErrInvalidConfig, b.Points, ImpactCap)
		}
	}
	return nil
}

func (c Config) buckets() []ImpactBucket {
	if len(c.ImpactBuckets) > 0 {
		return c.ImpactBuckets
	}
	return DefaultImpactBuckets()
}

func (c Config) decay() int {
	if c.DecayPerYear > 0 {
		return c.DecayPerYear
	}
	return DefaultDecayPerYear
}

// Breakdown is the full score for one paper. Total equals
// Relevance+Impact+Recency exactly; each component is clamped to its cap.
type Breakdown struct {
	Relevance int `json:"relevance" yaml:"relevance"`
	Impact    int `json:"impact" yaml:"impact"`
	Recency   int `json:"recency" yaml:"recency"`
	Total     int `json:"total" yaml:"total"`

	// MatchedKeywords lists every keyword that contributed to Relevance,
	// ordered by descending weight then keyword, for audit and export.
	MatchedKeywords []string `json:"matchedKeywords,omitempty" yaml:"matched_keywords,omitempty"`
}

// Score computes the Breakdown for one paper. It never fails: missing
// optional fields fall back to empty text, zero citations, and maximal age.
func Score(p types.Paper, cfg Config) Breakdown {
	relevance, hits := relevancePoints(searchText(p), cfg.KeywordWeights)
	impact := impactPoints(p.CitationCount, cfg.buckets())
	recency := recencyPoints(p.Year, cfg.CurrentYear, cfg.decay())

	return Breakdown{
		Relevance:       relevance,
		Impact:          impact,
		Recency:         recency,
		Total:           relevance + impact + recency,
		MatchedKeywords: hits,
	}
}

// searchText joins title, abstract and venue into one lowercase haystack.
// The space separator cannot occur inside a trimmed keyword boundary in a
// way a newline could not, and missing fields contribute empty strings.
func searchText(p types.Paper) string {
	return strings.ToLower(p.Title + " " + p.Abstract + " " + p.Venue)
}

type hit struct {
	keyword string
	weight  int
}

// relevancePoints sums the weights of keywords present in text as raw
// substrings. Each keyword counts at most once no matter how often it
// occurs; the sum is clamped to RelevanceCap.
func relevancePoints(text string, weights map[string]int) (int, []string) {
	var hits []hit
	total := 0
	for kw, w := range weights {
		if strings.Contains(text, strings.ToLower(kw)) {
			total += w
			hits = append(hits, hit{keyword: kw, weight: w})
		}
	}
	if total > RelevanceCap {
		total = RelevanceCap
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].weight != hits[j].weight {
			return hits[i].weight > hits[j].weight
		}
		return hits[i].keyword < hits[j].keyword
	})
	matched := make([]string, len(hits))
	for i, h := range hits {
		matched[i] = h.keyword
	}
	return total, matched
}

// impactPoints buckets the citation count. Negative counts are invalid
// input and score as 0; points are clamped to ImpactCap so an overridden
// table cannot exceed the cap.
func impactPoints(citations int, buckets []ImpactBucket) int {
	if citations < 0 {
		citations = 0
	}
	best := 0
	for _, b := range buckets {
		if citations >= b.MinCitations && b.Points > best {
			best = b.Points
		}
	}
	if best > ImpactCap {
		best = ImpactCap
	}
	return best
}

// recencyPoints decays linearly from RecencyCap at age 0. A missing year
// (<= 0) is maximally old and scores 0; future-dated papers clamp to the
// cap, never above.
func recencyPoints(year, currentYear, decayPerYear int) int {
	if year <= 0 {
		return 0
	}
	age := currentYear - year
	points := RecencyCap - decayPerYear*age
	if points < 0 {
		return 0
	}
	if points > RecencyCap {
		return RecencyCap
	}
	return points
}
