package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/entrykit/entrykit/pkg/certgen"
	"github.com/entrykit/entrykit/pkg/config"
	"github.com/entrykit/entrykit/pkg/healthcheck"
	"github.com/entrykit/entrykit/pkg/server"
	"github.com/entrykit/entrykit/pkg/server/endpoints"
)

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8090"
}

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Serve the bootstrap status API",
	Long: `Serve the bootstrap status API.

The API reports the certificate pair's presence, the upstream's health,
and the database bootstrap phase, plus a /health endpoint in the same
shape the application serves.

Example:
  entryctl status
  entryctl status --port 8090`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Get()

		certOpts := certgen.DefaultOptions()
		certOpts.Dir = cfg.CertDir
		certOpts.CommonName = cfg.CertCommonName

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")

		s := server.NewServer(host, port)
		endpoints.RegisterStatusEndpoints(s, &endpoints.StatusSources{
			Cert:   certOpts,
			Prober: healthcheck.New(cfg.HealthURL),
		})

		log.Printf("Serving status at http://%s:%s...\n", host, port)
		if err := s.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Status server failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	statusCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
}
