// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the research-hunter CLI: a thin
// orchestration layer that wires a paper source (Semantic Scholar or a
// local corpus), the scoring engine, and the export sinks.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/research-hunter/internal/secrets"
	"github.com/pdiddy/research-hunter/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the research-hunter CLI.
var rootCmd = &cobra.Command{
	Use:   "research-hunter",
	Short: "Search and rank academic papers with a transparent score",
	Long: `research-hunter queries the Semantic Scholar Graph API (or a local JSON
corpus) and assigns every paper a reproducible 0-100 score: relevance from
keyword presence (0-60), impact from citation buckets (0-20), and recency
from linear age decay (0-20). Ranked results are exported as CSV and JSON
so a reading list can be audited line by line.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env first so it can feed both viper and the secrets fallback.
		_ = godotenv.Load()

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./research-hunter.yaml or ~/.config/research-hunter/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("research-hunter")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "research-hunter"))
		}
	}

	viper.SetDefault("search.timeout", 30*time.Second)
	viper.SetDefault("search.user_agent", "research-hunter/0.1")
	viper.SetDefault("search.max_results", 25)
	viper.SetDefault("search.requests_per_second", 1.0)
	viper.SetDefault("search.cache_ttl", 5*time.Minute)
	viper.SetDefault("data_dir", ".research-hunter")

	viper.SetEnvPrefix("RESEARCH_HUNTER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// searchConfig assembles the search stage config from viper, with the API
// key resolved from the environment or .secrets/.
func searchConfig() types.SearchConfig {
	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("search.timeout"),
			UserAgent: viper.GetString("search.user_agent"),
		},
		MaxResults:        viper.GetInt("search.max_results"),
		RequestsPerSecond: viper.GetFloat64("search.requests_per_second"),
		CacheTTL:          viper.GetDuration("search.cache_ttl"),
		APIKey:            secrets.Resolve(loadedSecrets, "semantic-scholar-api-key", "SEMANTIC_SCHOLAR_API_KEY"),
	}
}

func dataDir() string {
	return viper.GetString("data_dir")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
