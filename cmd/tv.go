package cmd

import (
	"github.com/spf13/cobra"
)

var tvCmd = &cobra.Command{
	Use:   "tv",
	Short: "Launch straight into the auto-advancing presentation",
	RunE:  runTV,
}

func init() {
	rootCmd.AddCommand(tvCmd)
}

func runTV(_ *cobra.Command, _ []string) error {
	return launchTUI(true)
}
