package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// proxyCmd represents the proxy command
var proxyCmd = &cobra.Command{
	Use:   "proxy",
	Short: "Bootstrap the reverse proxy",
	Long:  `Bootstrap the reverse proxy container.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'proxy' requires a subcommand (run)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(proxyCmd)
}
