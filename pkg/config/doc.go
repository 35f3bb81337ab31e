// Package config provides configuration management for entrykit.
//
// Configuration is loaded from a YAML file and overridden by environment
// variables, with per-attribute source tracking so operators can see where
// each effective value came from.
//
// # Precedence
//
//  1. Environment variables (ENTRYKIT_*)
//  2. Config file (entrykit.yml)
//  3. Built-in defaults
//
// # Environment Variables
//
//   - ENTRYKIT_CONFIG_PATH: Directory containing entrykit.yml
//   - ENTRYKIT_CERT_DIR, ENTRYKIT_CERT_COMMON_NAME
//   - ENTRYKIT_HEALTH_URL, ENTRYKIT_HEALTH_INTERVAL
//   - ENTRYKIT_DATA_DIR, ENTRYKIT_SERVICE_USER, ENTRYKIT_LOCALE
//   - ENTRYKIT_DB_ROLE, ENTRYKIT_DB_PASSWORD
//   - ENTRYKIT_PROXY_COMMAND (space-separated argv; quote arguments
//     containing spaces, e.g. nginx -g "daemon off;")
package config
