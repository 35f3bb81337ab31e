package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/entrykit/entrykit/pkg/image"
)

// imageRenderCmd represents the image render command
var imageRenderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a build recipe to a Dockerfile",
	Long: `Render a declarative build recipe to a Dockerfile.

The recipe is a YAML description of the image: base image, system
packages, dependency manifest and lock file, source copies, working
directory, environment, and entrypoint. The output is deterministic.

Example:
  entryctl image render --recipe app.yml
  entryctl image render --recipe app.yml --output Dockerfile`,
	Run: func(cmd *cobra.Command, args []string) {
		recipePath, _ := cmd.Flags().GetString("recipe")
		outputPath, _ := cmd.Flags().GetString("output")

		recipe, err := image.LoadFile(recipePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load recipe: %v\n", err)
			os.Exit(1)
		}

		out := os.Stdout
		if outputPath != "" {
			f, err := os.Create(outputPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to create %s: %v\n", outputPath, err)
				os.Exit(1)
			}
			defer func() { _ = f.Close() }()
			out = f
		}

		if err := recipe.Render(out); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to render recipe: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	imageCmd.AddCommand(imageRenderCmd)
	imageRenderCmd.Flags().StringP("recipe", "r", "app.yml", "Recipe file to render")
	imageRenderCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
}
