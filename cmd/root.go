// Package cmd implements the progdash CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/GregLauar/Progress-Dashboard/internal/config"
	"github.com/GregLauar/Progress-Dashboard/internal/pipeline"
	"github.com/GregLauar/Progress-Dashboard/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagConfig  string
	flagDataDir string
	flagNoCache bool
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "progdash",
	Short: "Budget & OKR progress dashboard",
	Long:  "Track budget vs. actuals, AuM evolution, and OKR progress from spreadsheet exports.",
	RunE:  runTUI,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Config file path (default ~/.config/progdash/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Override the data directory")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip SQLite cache, reparse the workbooks")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// loadConfig resolves the effective config, applying CLI overrides.
func loadConfig() (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if flagConfig != "" {
		cfg, err = config.LoadFrom(flagConfig)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cfg, err
	}
	if flagDataDir != "" {
		cfg.Data.Dir = flagDataDir
	}
	return cfg, nil
}

// loadTables is the shared data loading path used by the text commands.
// Uses the SQLite cache when available for fast subsequent runs.
func loadTables(cfg config.Config) (*pipeline.Tables, error) {
	if !flagNoCache {
		cache, err := store.Open(pipeline.CachePath())
		if err != nil {
			if !flagQuiet {
				fmt.Fprintf(os.Stderr, "  Cache unavailable, doing full parse\n")
			}
		} else {
			defer cache.Close()

			tables, err := pipeline.LoadWithCache(cfg, cache)
			if err != nil {
				return nil, err
			}
			if !flagQuiet && tables.CacheHits > 0 {
				fmt.Fprintf(os.Stderr, "  %d of 3 files served from cache\n", tables.CacheHits)
			}
			return tables, nil
		}
	}

	return pipeline.Load(cfg)
}
