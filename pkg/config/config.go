package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/entrykit"
	ConfigFileName    = "entrykit.yml"
)

// Config holds all entrykit bootstrap settings.
type Config struct {
	// CertDir is the directory holding the proxy's TLS pair
	CertDir string `yaml:"cert_dir" json:"cert_dir"`

	// CertCommonName is the subject CN for generated certificates
	CertCommonName string `yaml:"cert_common_name" json:"cert_common_name"`

	// HealthURL is the upstream health endpoint gating proxy startup
	HealthURL string `yaml:"health_url" json:"health_url"`

	// HealthInterval is the poll interval in seconds
	HealthInterval int `yaml:"health_interval" json:"health_interval"`

	// DataDir is the database cluster data directory
	DataDir string `yaml:"data_dir" json:"data_dir"`

	// ServiceUser owns the data directory and runs cluster commands
	ServiceUser string `yaml:"service_user" json:"service_user"`

	// Locale is passed to initdb on first-run initialization
	Locale string `yaml:"locale" json:"locale"`

	// DBRole is the database role whose password is set on first run
	DBRole string `yaml:"db_role" json:"db_role"`

	// DBPassword is the password applied to DBRole
	DBPassword string `yaml:"db_password" json:"db_password"`

	// ProxyCommand is the argv the proxy bootstrapper execs once healthy
	ProxyCommand []string `yaml:"proxy_command" json:"proxy_command"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source.
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *Config
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary.
func Get() *Config {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			// Fall back to defaults on error
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment.
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// newDefault returns a config with the fixed bootstrap defaults.
func newDefault() *Config {
	return &Config{
		CertDir:        "/etc/nginx/certs",
		CertCommonName: "localhost",
		HealthURL:      "http://app:8080/health",
		HealthInterval: 5,
		DataDir:        "/var/lib/postgresql/data",
		ServiceUser:    "postgres",
		Locale:         "en_US.utf8",
		DBRole:         "bot",
		DBPassword:     "botpassword",
		ProxyCommand:   []string{"nginx", "-g", "daemon off;"},
		sources:        make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("ENTRYKIT_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig Config
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"cert_dir", "cert_common_name", "health_url", "health_interval",
		"data_dir", "service_user", "locale", "db_role", "db_password",
		"proxy_command",
	}
}

func (c *Config) applyFileConfig(file *Config) {
	if file.CertDir != "" {
		c.CertDir = file.CertDir
		c.sources["cert_dir"] = "file"
	}
	if file.CertCommonName != "" {
		c.CertCommonName = file.CertCommonName
		c.sources["cert_common_name"] = "file"
	}
	if file.HealthURL != "" {
		c.HealthURL = file.HealthURL
		c.sources["health_url"] = "file"
	}
	if file.HealthInterval != 0 {
		c.HealthInterval = file.HealthInterval
		c.sources["health_interval"] = "file"
	}
	if file.DataDir != "" {
		c.DataDir = file.DataDir
		c.sources["data_dir"] = "file"
	}
	if file.ServiceUser != "" {
		c.ServiceUser = file.ServiceUser
		c.sources["service_user"] = "file"
	}
	if file.Locale != "" {
		c.Locale = file.Locale
		c.sources["locale"] = "file"
	}
	if file.DBRole != "" {
		c.DBRole = file.DBRole
		c.sources["db_role"] = "file"
	}
	if file.DBPassword != "" {
		c.DBPassword = file.DBPassword
		c.sources["db_password"] = "file"
	}
	if len(file.ProxyCommand) > 0 {
		c.ProxyCommand = file.ProxyCommand
		c.sources["proxy_command"] = "file"
	}
}

func (c *Config) applyEnvConfig() {
	if val := os.Getenv("ENTRYKIT_CERT_DIR"); val != "" {
		c.CertDir = val
		c.sources["cert_dir"] = "environment"
	}
	if val := os.Getenv("ENTRYKIT_CERT_COMMON_NAME"); val != "" {
		c.CertCommonName = val
		c.sources["cert_common_name"] = "environment"
	}
	if val := os.Getenv("ENTRYKIT_HEALTH_URL"); val != "" {
		c.HealthURL = val
		c.sources["health_url"] = "environment"
	}
	if val := os.Getenv("ENTRYKIT_HEALTH_INTERVAL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.HealthInterval = i
			c.sources["health_interval"] = "environment"
		}
	}
	if val := os.Getenv("ENTRYKIT_DATA_DIR"); val != "" {
		c.DataDir = val
		c.sources["data_dir"] = "environment"
	}
	if val := os.Getenv("ENTRYKIT_SERVICE_USER"); val != "" {
		c.ServiceUser = val
		c.sources["service_user"] = "environment"
	}
	if val := os.Getenv("ENTRYKIT_LOCALE"); val != "" {
		c.Locale = val
		c.sources["locale"] = "environment"
	}
	if val := os.Getenv("ENTRYKIT_DB_ROLE"); val != "" {
		c.DBRole = val
		c.sources["db_role"] = "environment"
	}
	if val := os.Getenv("ENTRYKIT_DB_PASSWORD"); val != "" {
		c.DBPassword = val
		c.sources["db_password"] = "environment"
	}
	if val := os.Getenv("ENTRYKIT_PROXY_COMMAND"); val != "" {
		c.ProxyCommand = splitCommand(val)
		c.sources["proxy_command"] = "environment"
	}
}

// ConfigFilePath returns the path to the config file.
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute.
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// Attributes returns all attributes with effective values and sources.
func (c *Config) Attributes() []Attribute {
	values := map[string]string{
		"cert_dir":         c.CertDir,
		"cert_common_name": c.CertCommonName,
		"health_url":       c.HealthURL,
		"health_interval":  strconv.Itoa(c.HealthInterval),
		"data_dir":         c.DataDir,
		"service_user":     c.ServiceUser,
		"locale":           c.Locale,
		"db_role":          c.DBRole,
		"db_password":      strings.Repeat("*", len(c.DBPassword)),
		"proxy_command":    strings.Join(c.ProxyCommand, " "),
	}

	attrs := make([]Attribute, 0, len(values))
	for _, name := range attributeNames() {
		attrs = append(attrs, Attribute{
			Name:   name,
			Value:  values[name],
			Source: c.Source(name),
		})
	}
	return attrs
}

// PollInterval returns the health poll interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.HealthInterval) * time.Second
}

// splitCommand splits an argv string on whitespace, honoring single and
// double quotes so arguments like "daemon off;" survive as one token.
func splitCommand(val string) []string {
	var out []string
	var token strings.Builder
	var quote rune
	inToken := false

	for _, r := range val {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				token.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inToken = true
		case unicode.IsSpace(r):
			if inToken {
				out = append(out, token.String())
				token.Reset()
				inToken = false
			}
		default:
			token.WriteRune(r)
			inToken = true
		}
	}
	if inToken {
		out = append(out, token.String())
	}
	return out
}
