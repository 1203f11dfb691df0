package cmd

import (
	"fmt"

	"github.com/GregLauar/Progress-Dashboard/internal/cli"
	"github.com/GregLauar/Progress-Dashboard/internal/model"
	"github.com/GregLauar/Progress-Dashboard/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagTable      string
	flagCategory   string
	flagCumulative bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print a budget vs. actual table for one category",
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().StringVar(&flagTable, "table", "budget", "Source table: budget or aum")
	summaryCmd.Flags().StringVar(&flagCategory, "category", model.CategoryRevenues, "Category to summarize")
	summaryCmd.Flags().BoolVar(&flagCumulative, "cumulative", false, "Show running totals")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tables, err := loadTables(cfg)
	if err != nil {
		return err
	}

	ref := model.TableBudget
	switch flagTable {
	case "budget":
	case "aum":
		ref = model.TableAuM
	default:
		return fmt.Errorf("unknown table %q, expected budget or aum", flagTable)
	}

	records := tables.Table(ref)
	triple := pipeline.CompareSeries(records, flagCategory, flagCumulative)
	if triple.Empty() {
		fmt.Printf("\n  No rows for category %q in the %s table.\n", flagCategory, flagTable)
		fmt.Println("  Available categories:")
		for _, c := range pipeline.Categories(records) {
			fmt.Printf("    %s\n", c)
		}
		return nil
	}

	title := flagCategory
	if flagCumulative {
		title += " (cumulative)"
	}
	fmt.Println()
	fmt.Println(cli.RenderTitle(title))
	fmt.Print(cli.CompareTable("", triple))
	if !flagQuiet {
		fmt.Printf("  %s rows in the %s table\n", cli.FormatNumber(int64(len(records))), flagTable)
	}

	return nil
}
