package cmd

import (
	"fmt"

	"github.com/GregLauar/Progress-Dashboard/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: not found, using defaults")
	}
	fmt.Println()

	fmt.Printf("  Data dir:    %s\n", cfg.Data.Dir)
	fmt.Printf("  Budget file: %s\n", cfg.Data.BudgetFile)
	fmt.Printf("  AuM file:    %s\n", cfg.Data.AuMFile)
	fmt.Printf("  OKR file:    %s\n", cfg.Data.OKRFile)
	if cfg.Data.BrandFile != "" {
		fmt.Printf("  Brand file:  %s\n", cfg.Data.BrandFile)
	}
	fmt.Println()

	fmt.Printf("  Window:      %s .. %s\n", cfg.Window.Start, cfg.Window.End)
	for _, r := range cfg.Transforms {
		desc := ""
		if r.Scale != 0 && r.Scale != 1 {
			desc = fmt.Sprintf("scale ×%g", r.Scale)
		}
		if r.Negate {
			if desc != "" {
				desc += ", "
			}
			desc += "negate"
		}
		fmt.Printf("  Transform:   %s/%s  %s\n", r.Table, r.Category, desc)
	}
	fmt.Println()

	fmt.Printf("  TV dwell:    %s\n", cfg.Delay())
	fmt.Printf("  OKR slide:   %v\n", cfg.Presentation.IncludeOKR)
	fmt.Printf("  Theme:       %s\n", cfg.Appearance.Theme)

	return nil
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	if config.Exists() {
		return fmt.Errorf("config already exists at %s", config.ConfigPath())
	}
	if err := config.Save(config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("  Wrote %s\n", config.ConfigPath())
	return nil
}
