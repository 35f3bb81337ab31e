package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/entrykit/entrykit/pkg/config"
	"github.com/entrykit/entrykit/pkg/healthcheck"
)

// waitCmd represents the wait command
var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for the upstream service to be ready",
	Long: `Wait for the upstream service to be ready by polling its health endpoint.

This command polls the health URL at a fixed interval. By default it waits
forever: an upstream that never comes up stalls startup rather than failing
it. Use --retries to cap the number of attempts.

Example:
  entryctl wait
  entryctl wait --url http://app:8080/health --retries 60`,
	Run: func(cmd *cobra.Command, args []string) {
		url, _ := cmd.Flags().GetString("url")
		interval, _ := cmd.Flags().GetInt("interval")
		retries, _ := cmd.Flags().GetInt("retries")

		prober := healthcheck.New(url)
		prober.Interval = time.Duration(interval) * time.Second
		prober.Retries = retries

		if err := prober.Wait(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Upstream did not become ready: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(waitCmd)
	cfg := config.Get()
	waitCmd.Flags().StringP("url", "u", cfg.HealthURL, "Health endpoint to poll")
	waitCmd.Flags().IntP("interval", "i", cfg.HealthInterval, "Poll interval in seconds")
	waitCmd.Flags().IntP("retries", "r", 0, "Maximum attempts (0 = wait forever)")
}
