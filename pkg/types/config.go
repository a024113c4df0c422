// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "research-hunter/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the Semantic Scholar search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the maximum number of papers to fetch (default 25).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// APIKey is an optional Semantic Scholar API key for higher rate limits.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// RequestsPerSecond throttles API calls. The public Graph API allows
	// roughly 1 request/second without a key (default 1).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`

	// CacheTTL is how long identical queries are served from the in-process
	// response cache (default 5m; 0 disables caching).
	CacheTTL time.Duration `json:"cache_ttl" yaml:"cache_ttl"`
}

// StoreConfig holds settings for the run-history store.
type StoreConfig struct {
	// DataDir is the directory holding the SQLite history database
	// (default ".research-hunter").
	DataDir string `json:"data_dir" yaml:"data_dir"`
}
