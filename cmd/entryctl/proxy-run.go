package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/entrykit/entrykit/pkg/certgen"
	"github.com/entrykit/entrykit/pkg/config"
	"github.com/entrykit/entrykit/pkg/healthcheck"
	"github.com/entrykit/entrykit/pkg/proc"
)

// proxyRunCmd represents the proxy run command
var proxyRunCmd = &cobra.Command{
	Use:   "run [-- command...]",
	Short: "Provision TLS, wait for the upstream, then exec the proxy",
	Long: `Provision TLS, wait for the upstream service, then exec the proxy daemon.

The sequence is the proxy container's entrypoint:

 1. Ensure the self-signed certificate pair exists (generate if missing).
 2. Poll the upstream health endpoint until it reports healthy. This wait
    is unbounded: an unreachable upstream stalls startup forever.
 3. Replace this process with the proxy daemon in foreground mode, so the
    container's lifecycle tracks the proxy's.

The command after -- overrides the configured proxy argv.

Example:
  entryctl proxy run
  entryctl proxy run -- nginx -g "daemon off;"`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Get()

		opts := certgen.DefaultOptions()
		opts.Dir = cfg.CertDir
		opts.CommonName = cfg.CertCommonName

		generated, err := certgen.Ensure(opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to provision certificate pair: %v\n", err)
			os.Exit(1)
		}
		if generated {
			log.Printf("Generated self-signed certificate pair in %s", opts.Dir)
		}

		prober := healthcheck.New(cfg.HealthURL)
		prober.Interval = cfg.PollInterval()
		if err := prober.Wait(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Health wait failed: %v\n", err)
			os.Exit(1)
		}

		argv := cfg.ProxyCommand
		if len(args) > 0 {
			argv = args
		}

		log.Printf("Starting proxy: %v", argv)
		if err := proc.Exec(argv); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to exec proxy: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	proxyCmd.AddCommand(proxyRunCmd)
}
