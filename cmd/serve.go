package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GregLauar/Progress-Dashboard/internal/daemon"

	"github.com/spf13/cobra"
)

var (
	flagServeAddr     string
	flagServeInterval int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve dashboard data over HTTP with an SSE slide stream",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "127.0.0.1:8787", "Listen address")
	serveCmd.Flags().IntVar(&flagServeInterval, "interval", 60, "Reload interval in seconds")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	svc := daemon.New(daemon.Config{
		App:      cfg,
		UseCache: !flagNoCache,
		Interval: time.Duration(flagServeInterval) * time.Second,
		Addr:     flagServeAddr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Serving on http://%s (reload every %ds)\n", flagServeAddr, flagServeInterval)
	}

	return svc.Run(ctx)
}
