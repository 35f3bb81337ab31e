package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENTRYKIT_CONFIG_PATH", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/etc/nginx/certs", cfg.CertDir)
	assert.Equal(t, "localhost", cfg.CertCommonName)
	assert.Equal(t, "http://app:8080/health", cfg.HealthURL)
	assert.Equal(t, 5, cfg.HealthInterval)
	assert.Equal(t, "/var/lib/postgresql/data", cfg.DataDir)
	assert.Equal(t, "postgres", cfg.ServiceUser)
	assert.Equal(t, "en_US.utf8", cfg.Locale)
	assert.Equal(t, "bot", cfg.DBRole)
	assert.Equal(t, []string{"nginx", "-g", "daemon off;"}, cfg.ProxyCommand)

	for _, name := range attributeNames() {
		assert.Equal(t, "default", cfg.Source(name), name)
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ENTRYKIT_CONFIG_PATH", dir)

	content := `
cert_dir: /srv/certs
health_url: http://upstream:9000/health
health_interval: 10
db_role: app
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/certs", cfg.CertDir)
	assert.Equal(t, "file", cfg.Source("cert_dir"))
	assert.Equal(t, "http://upstream:9000/health", cfg.HealthURL)
	assert.Equal(t, 10, cfg.HealthInterval)
	assert.Equal(t, "app", cfg.DBRole)

	// Untouched values stay at defaults
	assert.Equal(t, "localhost", cfg.CertCommonName)
	assert.Equal(t, "default", cfg.Source("cert_common_name"))
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ENTRYKIT_CONFIG_PATH", dir)

	require.NoError(t, os.WriteFile(
		filepath.Join(dir, ConfigFileName),
		[]byte("cert_dir: /srv/certs\n"),
		0o644,
	))

	t.Setenv("ENTRYKIT_CERT_DIR", "/env/certs")
	t.Setenv("ENTRYKIT_HEALTH_INTERVAL", "15")
	t.Setenv("ENTRYKIT_PROXY_COMMAND", "caddy run")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/env/certs", cfg.CertDir)
	assert.Equal(t, "environment", cfg.Source("cert_dir"))
	assert.Equal(t, 15, cfg.HealthInterval)
	assert.Equal(t, []string{"caddy", "run"}, cfg.ProxyCommand)
	assert.Equal(t, "environment", cfg.Source("proxy_command"))
}

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "plain", input: "caddy run", expected: []string{"caddy", "run"}},
		{
			name:     "double quoted argument",
			input:    `nginx -g "daemon off;"`,
			expected: []string{"nginx", "-g", "daemon off;"},
		},
		{
			name:     "single quoted argument",
			input:    `sh -c 'echo hello world'`,
			expected: []string{"sh", "-c", "echo hello world"},
		},
		{name: "extra whitespace", input: "  nginx   -t  ", expected: []string{"nginx", "-t"}},
		{name: "quoted empty argument", input: `printf ""`, expected: []string{"printf", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitCommand(tt.input))
		})
	}
}

func TestLoad_QuotedProxyCommandFromEnv(t *testing.T) {
	t.Setenv("ENTRYKIT_CONFIG_PATH", t.TempDir())
	t.Setenv("ENTRYKIT_PROXY_COMMAND", `nginx -g "daemon off;"`)

	cfg, err := Load()
	require.NoError(t, err)

	// The default argv must round-trip through the env override.
	assert.Equal(t, []string{"nginx", "-g", "daemon off;"}, cfg.ProxyCommand)
}

func TestLoad_BadYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ENTRYKIT_CONFIG_PATH", dir)

	require.NoError(t, os.WriteFile(
		filepath.Join(dir, ConfigFileName),
		[]byte("cert_dir: [unterminated"),
		0o644,
	))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoad_InvalidIntervalIgnored(t *testing.T) {
	t.Setenv("ENTRYKIT_CONFIG_PATH", t.TempDir())
	t.Setenv("ENTRYKIT_HEALTH_INTERVAL", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.HealthInterval)
	assert.Equal(t, "default", cfg.Source("health_interval"))
}

func TestAttributes_MasksPassword(t *testing.T) {
	t.Setenv("ENTRYKIT_CONFIG_PATH", t.TempDir())
	t.Setenv("ENTRYKIT_DB_PASSWORD", "hunter2")

	cfg, err := Load()
	require.NoError(t, err)

	var found bool
	for _, attr := range cfg.Attributes() {
		if attr.Name == "db_password" {
			found = true
			assert.Equal(t, "*******", attr.Value)
			assert.Equal(t, "environment", attr.Source)
		}
	}
	assert.True(t, found)
}

func TestPollInterval(t *testing.T) {
	cfg := newDefault()
	assert.Equal(t, "5s", cfg.PollInterval().String())
}
