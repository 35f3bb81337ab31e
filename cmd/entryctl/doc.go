// Package main implements entryctl, the entrykit bootstrap CLI.
//
// entrykit replaces a container stack's shell entrypoints with one tool:
// it provisions the reverse proxy's self-signed TLS pair, gates proxy
// startup on an upstream health check, performs first-run initialization
// of the PostgreSQL cluster, runs schema migrations, and renders the
// application's container build recipe.
//
// # Quick Start
//
//	# Proxy container entrypoint
//	entryctl proxy run
//
//	# Database container entrypoint
//	entryctl db init -- postgres
//
//	# Apply schema migrations
//	entryctl db migrate
//
//	# Render the application image build file
//	entryctl image render --recipe app.yml
//
// # Environment Variables
//
//   - ENTRYKIT_CONFIG_PATH: Directory containing entrykit.yml
//   - ENTRYKIT_*: Per-setting overrides (see pkg/config)
//   - DATABASE_URL: PostgreSQL connection string for migrations
//   - ENTRYKIT_LOG_LEVEL: Log level (debug enables SQL logging)
package main
