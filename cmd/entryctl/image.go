package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// imageCmd represents the image command
var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Work with container build recipes",
	Long:  `Work with the application's container build recipes.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'image' requires a subcommand (render)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(imageCmd)
}
