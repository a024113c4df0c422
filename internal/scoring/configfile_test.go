// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scoring

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-hunter/pkg/types"
)

func paperWithCitations(n int) types.Paper {
	return types.Paper{CitationCount: n}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scoring.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDocument(t *testing.T) {
	path := writeConfig(t, `{
		"keywords": {"Emotion Regulation": 30, "wearable": 8},
		"currentYear": 2024
	}`)

	cfg, err := LoadConfig(path, 0)
	require.NoError(t, err)

	assert.Equal(t, 2024, cfg.CurrentYear)
	assert.Equal(t, map[string]int{"emotion regulation": 30, "wearable": 8}, cfg.KeywordWeights)
}

func TestLoadConfigFlagYearWins(t *testing.T) {
	path := writeConfig(t, `{"keywords": {"x": 1}, "currentYear": 2020}`)

	cfg, err := LoadConfig(path, 2026)
	require.NoError(t, err)
	assert.Equal(t, 2026, cfg.CurrentYear)
}

func TestLoadConfigAbsentFieldsFallBack(t *testing.T) {
	path := writeConfig(t, `{}`)

	cfg, err := LoadConfig(path, 2026)
	require.NoError(t, err)
	assert.Equal(t, DefaultKeywordWeights(), cfg.KeywordWeights)
	assert.Equal(t, 2026, cfg.CurrentYear)
}

func TestLoadConfigEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig("", 2026)
	require.NoError(t, err)
	assert.Equal(t, DefaultKeywordWeights(), cfg.KeywordWeights)
}

func TestLoadConfigRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"non-positive weight", `{"keywords": {"x": -5}}`},
		{"malformed JSON", `{"keywords": `},
		{"bucket points above cap", `{"keywords": {"x": 1}, "impactBuckets": [{"minCitations": 10, "points": 99}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content), 2026)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"), 2026)
	assert.Error(t, err)
}

func TestParseConfigBucketOverride(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{
		"keywords": {"x": 1},
		"currentYear": 2026,
		"impactBuckets": [{"minCitations": 1, "points": 20}]
	}`))
	require.NoError(t, err)

	b := Score(paperWithCitations(1), cfg)
	assert.Equal(t, 20, b.Impact)
}
