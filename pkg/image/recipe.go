package image

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// CopyStep copies a path from the build context into the image.
type CopyStep struct {
	Src string `yaml:"src"`
	Dst string `yaml:"dst"`
}

// EnvVar is a single environment variable. A slice keeps declaration
// order, which map keys would not.
type EnvVar struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// Healthcheck mirrors the Dockerfile HEALTHCHECK instruction.
type Healthcheck struct {
	Interval    string   `yaml:"interval"`
	Timeout     string   `yaml:"timeout"`
	StartPeriod string   `yaml:"start_period"`
	Retries     int      `yaml:"retries"`
	Command     []string `yaml:"command"`
}

// Recipe is a declarative container build description.
type Recipe struct {
	BaseImage string   `yaml:"base_image"`
	Packages  []string `yaml:"packages"`

	// Manifest and Lockfile are the dependency resolution inputs, copied
	// before the source tree so dependency installation caches well.
	Manifest string `yaml:"manifest"`
	Lockfile string `yaml:"lockfile"`

	// InstallCommand resolves and installs dependencies from the
	// manifest and lock file.
	InstallCommand string `yaml:"install_command"`

	Copy        []CopyStep   `yaml:"copy"`
	Workdir     string       `yaml:"workdir"`
	Env         []EnvVar     `yaml:"env"`
	Expose      []int        `yaml:"expose"`
	Healthcheck *Healthcheck `yaml:"healthcheck"`
	Entrypoint  []string     `yaml:"entrypoint"`
}

// Load reads and validates a recipe.
func Load(r io.Reader) (*Recipe, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe: %w", err)
	}

	var recipe Recipe
	if err := yaml.Unmarshal(data, &recipe); err != nil {
		return nil, fmt.Errorf("failed to parse recipe: %w", err)
	}

	if err := recipe.Validate(); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// LoadFile reads and validates a recipe from a file path.
func LoadFile(path string) (*Recipe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open recipe %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return Load(f)
}

// Validate checks the recipe for the fields a build cannot proceed without.
func (r *Recipe) Validate() error {
	if r.BaseImage == "" {
		return fmt.Errorf("recipe is missing base_image")
	}
	if len(r.Entrypoint) == 0 {
		return fmt.Errorf("recipe is missing entrypoint")
	}
	if (r.Manifest == "") != (r.Lockfile == "") {
		return fmt.Errorf("manifest and lockfile must be set together")
	}
	if r.Manifest != "" && r.InstallCommand == "" {
		return fmt.Errorf("recipe declares a manifest but no install_command")
	}
	return nil
}
