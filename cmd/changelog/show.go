package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a version's release notes",
	Long:  `Show the release notes for one version of the changelog.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		version, _ := cmd.Flags().GetString("version")

		notes, err := parseFile(file)
		if err != nil {
			return err
		}

		release := notes.Release(version)
		if release == nil {
			return fmt.Errorf("version %s not found in %s", version, file)
		}

		if release.Date != "" {
			fmt.Printf("## [%s] - %s\n\n", release.Version, release.Date)
		} else {
			fmt.Printf("## [%s]\n\n", release.Version)
		}
		fmt.Println(release.Body)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List changelog versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")

		notes, err := parseFile(file)
		if err != nil {
			return err
		}

		for _, release := range notes.Releases {
			if release.Date != "" {
				fmt.Printf("%s (%s)\n", release.Version, release.Date)
			} else {
				fmt.Println(release.Version)
			}
		}
		return nil
	},
}

func parseFile(path string) (*Notes, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseNotes(content)
}

func init() {
	showCmd.Flags().StringP("file", "f", "CHANGELOG.md", "Path to the changelog file")
	showCmd.Flags().StringP("version", "v", "", "Version to show")
	_ = showCmd.MarkFlagRequired("version")

	listCmd.Flags().StringP("file", "f", "CHANGELOG.md", "Path to the changelog file")

	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(listCmd)
}
