package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// certCmd represents the cert command
var certCmd = &cobra.Command{
	Use:   "cert",
	Short: "Manage the proxy's TLS certificate pair",
	Long:  `Manage the self-signed TLS certificate pair used by the reverse proxy.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'cert' requires a subcommand (ensure, watch)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(certCmd)
}
