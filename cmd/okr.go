package cmd

import (
	"fmt"

	"github.com/GregLauar/Progress-Dashboard/internal/cli"
	"github.com/GregLauar/Progress-Dashboard/internal/pipeline"

	"github.com/spf13/cobra"
)

var okrCmd = &cobra.Command{
	Use:   "okr",
	Short: "Print objectives with averaged key-result progress",
	RunE:  runOKR,
}

func init() {
	rootCmd.AddCommand(okrCmd)
}

func runOKR(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tables, err := loadTables(cfg)
	if err != nil {
		return err
	}

	summaries := pipeline.SummarizeObjectives(tables.Objectives)
	if len(summaries) == 0 {
		fmt.Println("\n  No objectives in the OKR export.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("OKR Progress"))
	fmt.Print(cli.ObjectiveTable(summaries, 30))

	return nil
}
