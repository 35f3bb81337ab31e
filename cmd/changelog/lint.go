package main

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
)

var (
	semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
	datePattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Lint the changelog",
	Long: `Check the changelog against the Keep a Changelog conventions:
an Unreleased section exists, released versions are semver with an
ISO 8601 date, and every release has a link definition.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")

		notes, err := parseFile(file)
		if err != nil {
			return err
		}

		problems := Lint(notes)
		if len(problems) == 0 {
			fmt.Println("Changelog is valid")
			return nil
		}

		for _, p := range problems {
			fmt.Println(" -", p)
		}
		return fmt.Errorf("%d problem(s) found", len(problems))
	},
}

// Lint reports changelog conventions the parsed notes violate.
func Lint(notes *Notes) []string {
	var problems []string

	var hasUnreleased bool
	for _, release := range notes.Releases {
		if strings.EqualFold(release.Version, "unreleased") {
			hasUnreleased = true
			continue
		}

		if !semverPattern.MatchString(strings.TrimPrefix(release.Version, "v")) {
			problems = append(problems, fmt.Sprintf("version %q is not semver", release.Version))
		}
		if release.Date == "" {
			problems = append(problems, fmt.Sprintf("version %q has no release date", release.Version))
		} else if !datePattern.MatchString(release.Date) {
			problems = append(problems, fmt.Sprintf("version %q date %q is not ISO 8601", release.Version, release.Date))
		}
		if _, ok := notes.Links[release.Version]; !ok {
			problems = append(problems, fmt.Sprintf("version %q has no link definition", release.Version))
		}
	}

	if !hasUnreleased {
		problems = append(problems, "missing Unreleased section")
	}

	return problems
}

func init() {
	lintCmd.Flags().StringP("file", "f", "CHANGELOG.md", "Path to the changelog file")
	rootCmd.AddCommand(lintCmd)
}
