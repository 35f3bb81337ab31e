// Package db provides database connection utilities for entrykit.
//
// Connections go through GORM with the PostgreSQL driver. The bootstrapper
// connects over the local socket as the cluster's service account; the
// migration commands use DATABASE_URL.
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string (migrations)
//   - ENTRYKIT_LOG_LEVEL: Set to "debug" for SQL query logging
package db
