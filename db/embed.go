// Package db embeds the application's schema migrations for production
// builds (embed_migrations build tag).
package db

import "embed"

//go:embed migrations
var Migrations embed.FS
