package integration

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/entrykit/entrykit/pkg/certgen"
	"github.com/entrykit/entrykit/pkg/dbboot"
	"github.com/entrykit/entrykit/pkg/healthcheck"
	"github.com/entrykit/entrykit/pkg/server"
	"github.com/entrykit/entrykit/pkg/server/endpoints"
)

// TestContext holds all the resources needed for integration tests
type TestContext struct {
	DB          *gorm.DB
	RawDB       *sql.DB
	Container   testcontainers.Container
	DatabaseURL string
	ServerURL   string
	HTTPClient  *http.Client

	CertOptions   certgen.Options
	migrationsDir string
	certDir       string
}

// NewTestContext starts a PostgreSQL testcontainer and an in-process
// status server wired to real bootstrap components.
func NewTestContext(ctx context.Context) (*TestContext, error) {
	projectRoot, err := findProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to find project root: %w", err)
	}
	migrationsDir := filepath.Join(projectRoot, "db", "migrations")

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("entrykit_test"),
		tcpostgres.WithUsername("bot"),
		tcpostgres.WithPassword("botpassword"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := pgContainer.Host(ctx)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := pgContainer.MappedPort(ctx, "5432")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}
	connStr := fmt.Sprintf("postgres://bot:botpassword@%s:%s/entrykit_test?sslmode=disable", host, port.Port())

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	rawDB, err := db.DB()
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get raw db: %w", err)
	}

	certDir, err := os.MkdirTemp("", "entrykit-certs-")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to create cert dir: %w", err)
	}
	certOpts := certgen.DefaultOptions()
	certOpts.Dir = certDir
	if _, err := certgen.Ensure(certOpts); err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to generate certificate pair: %w", err)
	}

	serverPort := "18090"
	serverURL := fmt.Sprintf("http://127.0.0.1:%s", serverPort)

	s := server.NewServer("127.0.0.1", serverPort)
	endpoints.RegisterStatusEndpoints(s, &endpoints.StatusSources{
		Boot:   dbboot.New(dbboot.Config{DataDir: filepath.Join(certDir, "pgdata")}),
		Cert:   certOpts,
		Prober: healthcheck.New(serverURL + "/health"),
	})
	go func() {
		_ = s.Start()
	}()

	if err := waitForServer(serverURL+"/health", 30*time.Second); err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("status server failed to become ready: %w", err)
	}

	return &TestContext{
		DB:            db,
		RawDB:         rawDB,
		Container:     pgContainer,
		DatabaseURL:   connStr,
		ServerURL:     serverURL,
		HTTPClient:    &http.Client{Timeout: 10 * time.Second},
		CertOptions:   certOpts,
		migrationsDir: migrationsDir,
		certDir:       certDir,
	}, nil
}

// migrator builds a migrate instance against the test database, using the
// same dedicated migrations table the CLI uses.
func (tc *TestContext) migrator() (*migrate.Migrate, error) {
	sourceURL := "file://" + tc.migrationsDir
	dbURL := tc.DatabaseURL + "&x-migrations-table=go_schema_migrations"
	return migrate.New(sourceURL, dbURL)
}

// MigrateUp applies all pending migrations.
func (tc *TestContext) MigrateUp() error {
	m, err := tc.migrator()
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

// MigrateDown rolls back the given number of migrations.
func (tc *TestContext) MigrateDown(steps int) error {
	m, err := tc.migrator()
	if err != nil {
		return err
	}
	defer m.Close()
	return m.Steps(-steps)
}

// MigrationVersion returns the current schema version, or 0 when no
// migration has been applied.
func (tc *TestContext) MigrationVersion() (uint, error) {
	m, err := tc.migrator()
	if err != nil {
		return 0, err
	}
	defer m.Close()
	version, _, err := m.Version()
	if err == migrate.ErrNilVersion {
		return 0, nil
	}
	return version, err
}

// waitForServer polls the URL until it answers 200 or the timeout passes
func waitForServer(url string, timeout time.Duration) error {
	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}

	return fmt.Errorf("server did not become ready within %v", timeout)
}

// Close cleans up all test resources
func (tc *TestContext) Close(ctx context.Context) {
	if tc.RawDB != nil {
		_ = tc.RawDB.Close()
	}
	if tc.Container != nil {
		_ = tc.Container.Terminate(ctx)
	}
	if tc.certDir != "" {
		_ = os.RemoveAll(tc.certDir)
	}
}

// findProjectRoot locates the project root directory
func findProjectRoot() (string, error) {
	paths := []string{
		"../..",
		"..",
		".",
	}

	for _, p := range paths {
		goMod := filepath.Join(p, "go.mod")
		if _, err := os.Stat(goMod); err == nil {
			return filepath.Abs(p)
		}
	}

	return "", fmt.Errorf("project root not found (looking for go.mod)")
}
