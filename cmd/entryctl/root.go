package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base command all subcommands attach to
var rootCmd = &cobra.Command{
	Use:   "entryctl",
	Short: "Container bootstrap orchestration for the application stack",
	Long: `entryctl bootstraps the containers of the application stack.

It provisions the reverse proxy's TLS certificate, gates proxy startup on
the upstream health check, initializes the database cluster on first run,
and renders the application image's build recipe.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
