package image

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const appRecipe = `
base_image: python:3.12-slim
manifest: pyproject.toml
lockfile: uv.lock
install_command: uv sync --frozen
copy:
  - src: src/
    dst: ./src/
  - src: settings.ini
    dst: ./settings.ini
workdir: /app
env:
  - name: PYTHONUNBUFFERED
    value: "1"
expose: [8080]
entrypoint: ["python", "src/main.py"]
`

func TestLoad(t *testing.T) {
	recipe, err := Load(strings.NewReader(appRecipe))
	require.NoError(t, err)

	assert.Equal(t, "python:3.12-slim", recipe.BaseImage)
	assert.Equal(t, "pyproject.toml", recipe.Manifest)
	assert.Equal(t, "uv.lock", recipe.Lockfile)
	assert.Len(t, recipe.Copy, 2)
	assert.Equal(t, []string{"python", "src/main.py"}, recipe.Entrypoint)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		recipe  string
		wantErr string
	}{
		{
			name:    "missing base image",
			recipe:  `entrypoint: ["python", "main.py"]`,
			wantErr: "missing base_image",
		},
		{
			name:    "missing entrypoint",
			recipe:  `base_image: python:3.12-slim`,
			wantErr: "missing entrypoint",
		},
		{
			name: "manifest without lockfile",
			recipe: `
base_image: python:3.12-slim
manifest: pyproject.toml
entrypoint: ["python"]
`,
			wantErr: "must be set together",
		},
		{
			name: "manifest without install command",
			recipe: `
base_image: python:3.12-slim
manifest: pyproject.toml
lockfile: uv.lock
entrypoint: ["python"]
`,
			wantErr: "no install_command",
		},
		{
			name:    "bad yaml",
			recipe:  "base_image: [",
			wantErr: "failed to parse recipe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.recipe))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRender(t *testing.T) {
	recipe, err := Load(strings.NewReader(appRecipe))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, recipe.Render(&out))
	dockerfile := out.String()

	assert.True(t, strings.HasPrefix(dockerfile, "FROM python:3.12-slim\n"))
	assert.Contains(t, dockerfile, "WORKDIR /app")
	assert.Contains(t, dockerfile, "COPY pyproject.toml uv.lock ./")
	assert.Contains(t, dockerfile, "RUN uv sync --frozen")
	assert.Contains(t, dockerfile, "COPY src/ ./src/")
	assert.Contains(t, dockerfile, "ENV PYTHONUNBUFFERED=1")
	assert.Contains(t, dockerfile, "EXPOSE 8080")
	assert.Contains(t, dockerfile, `ENTRYPOINT ["python", "src/main.py"]`)

	// Dependency layer comes before the source tree
	assert.Less(t,
		strings.Index(dockerfile, "RUN uv sync"),
		strings.Index(dockerfile, "COPY src/"),
	)
}

func TestRender_Deterministic(t *testing.T) {
	recipe, err := Load(strings.NewReader(appRecipe))
	require.NoError(t, err)

	var first, second bytes.Buffer
	require.NoError(t, recipe.Render(&first))
	require.NoError(t, recipe.Render(&second))
	assert.Equal(t, first.String(), second.String())
}

func TestRender_PackagesAndHealthcheck(t *testing.T) {
	recipe := &Recipe{
		BaseImage:  "nginx:1.27",
		Packages:   []string{"curl", "openssl"},
		Entrypoint: []string{"nginx", "-g", "daemon off;"},
		Healthcheck: &Healthcheck{
			Interval: "30s",
			Timeout:  "3s",
			Retries:  3,
			Command:  []string{"curl", "-f", "http://localhost/health"},
		},
	}
	require.NoError(t, recipe.Validate())

	var out bytes.Buffer
	require.NoError(t, recipe.Render(&out))
	dockerfile := out.String()

	assert.Contains(t, dockerfile, "apt-get install -y --no-install-recommends curl openssl")
	assert.Contains(t, dockerfile, "HEALTHCHECK --interval=30s --timeout=3s --retries=3")
	assert.Contains(t, dockerfile, `ENTRYPOINT ["nginx", "-g", "daemon off;"]`)
}
