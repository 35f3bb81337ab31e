package main

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/entrykit/entrykit/pkg/db"
)

// dbMigrateCmd represents the db migrate command
var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create and/or upgrade the database schema",
	Long: `Create and/or upgrade the database schema.

This command runs all pending schema migrations from the db/migrations
directory against DATABASE_URL.

Example:
  entryctl db migrate`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runMigrations(); err != nil {
			fmt.Println("Migration failed:", err)
			os.Exit(1)
		}
	},
}

var dbMigrateDownCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Rollback database migrations",
	Long: `Rollback database migrations.

This command rolls back the specified number of migrations (default: 1).

Example:
  entryctl db down      # Rollback 1 migration
  entryctl db down 3    # Rollback 3 migrations`,
	Run: func(cmd *cobra.Command, args []string) {
		steps := 1
		if len(args) > 0 {
			_, _ = fmt.Sscanf(args[0], "%d", &steps)
		}

		if err := runMigrationsDown(steps); err != nil {
			fmt.Println("Rollback failed:", err)
			os.Exit(1)
		}
	},
}

var dbMigrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current migration version",
	Long:  `Show the current database migration version.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := showMigrationStatus(); err != nil {
			fmt.Println("Failed to get status:", err)
			os.Exit(1)
		}
	},
}

func init() {
	dbCmd.AddCommand(dbMigrateCmd)
	dbCmd.AddCommand(dbMigrateDownCmd)
	dbCmd.AddCommand(dbMigrateStatusCmd)
}

// migrationsURL returns the database URL with a dedicated migrations table,
// leaving alembic_version to the Python application's tooling.
func migrationsURL() string {
	dbURL := db.URL()
	if dbURL == "" {
		return ""
	}
	if strings.Contains(dbURL, "?") {
		return dbURL + "&x-migrations-table=go_schema_migrations"
	}
	return dbURL + "?x-migrations-table=go_schema_migrations"
}

func runMigrations() error {
	dbURL := db.URL()
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	m, err := createMigrateInstance(migrationsURL())
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	version, dirty, _ := m.Version()
	fmt.Printf("Current version: %d (dirty: %v)\n", version, dirty)

	if err := m.Up(); err != nil {
		if err == migrate.ErrNoChange {
			fmt.Println("No migrations to run - database is up to date")
			if err := syncAlembicVersion(dbURL); err != nil {
				fmt.Printf("Warning: Failed to sync alembic_version: %v\n", err)
			}
			return nil
		}
		return fmt.Errorf("migration failed: %w", err)
	}

	newVersion, _, _ := m.Version()
	fmt.Printf("Migrated to version: %d\n", newVersion)

	// Keep the Python application's alembic bookkeeping in step so it does
	// not try to re-apply schema changes made here.
	if err := syncAlembicVersion(dbURL); err != nil {
		fmt.Printf("Warning: Failed to sync alembic_version: %v\n", err)
	}

	fmt.Println("Migrations complete")
	return nil
}

// syncAlembicVersion records the current head in the alembic-compatible
// version table, using the revision id the application's tooling knows.
func syncAlembicVersion(dbURL string) error {
	conn, err := sql.Open("postgres", dbURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() { _ = conn.Close() }()

	var currentVersion int64
	err = conn.QueryRow("SELECT version FROM go_schema_migrations WHERE dirty = false LIMIT 1").Scan(&currentVersion)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil // No migrations applied yet
		}
		return fmt.Errorf("failed to get current version: %w", err)
	}

	names, err := migrationNames()
	if err != nil {
		return err
	}
	revision, err := alembicRevision(names, currentVersion)
	if err != nil {
		return err
	}

	_, err = conn.Exec(`
		CREATE TABLE IF NOT EXISTS alembic_version (
			version_num VARCHAR(32) NOT NULL,
			CONSTRAINT alembic_version_pkc PRIMARY KEY (version_num)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create alembic_version table: %w", err)
	}

	// alembic keeps exactly one row
	if _, err := conn.Exec(`DELETE FROM alembic_version`); err != nil {
		return fmt.Errorf("failed to clear alembic_version: %w", err)
	}
	if _, err := conn.Exec(
		`INSERT INTO alembic_version (version_num) VALUES ($1)`,
		revision,
	); err != nil {
		return fmt.Errorf("failed to record version: %w", err)
	}

	return nil
}

// alembicRevision maps a schema version to the application's alembic
// revision id. Migration files are named <date><seq>_<slug>.up.sql and
// the alembic revision for the same change is <date>_<slug>.
func alembicRevision(names []string, version int64) (string, error) {
	prefix := fmt.Sprintf("%d_", version)
	for _, name := range names {
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".up.sql") {
			continue
		}

		stem := strings.TrimSuffix(name, ".up.sql")
		if len(stem) <= 14 {
			return "", fmt.Errorf("migration %s has no slug after its timestamp", name)
		}
		return stem[:8] + stem[14:], nil
	}
	return "", fmt.Errorf("no migration file found for version %d", version)
}

func runMigrationsDown(steps int) error {
	if db.URL() == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	m, err := createMigrateInstance(migrationsURL())
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	fmt.Printf("Rolling back %d migration(s)...\n", steps)

	if err := m.Steps(-steps); err != nil {
		return fmt.Errorf("rollback failed: %w", err)
	}

	version, _, _ := m.Version()
	fmt.Printf("Rolled back to version: %d\n", version)
	return nil
}

func showMigrationStatus() error {
	if db.URL() == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	m, err := createMigrateInstance(migrationsURL())
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	version, dirty, err := m.Version()
	if err != nil {
		if err == migrate.ErrNilVersion {
			fmt.Println("No migrations have been applied yet")
			return nil
		}
		return err
	}

	fmt.Printf("Current version: %d\n", version)
	if dirty {
		fmt.Println("Warning: Database is in a dirty state")
	}
	return nil
}
