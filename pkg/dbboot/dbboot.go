package dbboot

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/entrykit/entrykit/pkg/db"
	"github.com/entrykit/entrykit/pkg/proc"
)

const (
	// DefaultGraceWait is the fixed delay between starting the temporary
	// server and applying the password change. It is not a readiness
	// probe: a cluster that takes longer to start makes the credential
	// step fail, and the whole sequence aborts.
	DefaultGraceWait = 5 * time.Second

	// DefaultDataDir is the cluster data directory inside the container.
	DefaultDataDir = "/var/lib/postgresql/data"

	// DefaultServiceUser is the conventional cluster account. It is not
	// applied by New: an empty ServiceUser disables ownership handling.
	DefaultServiceUser = "postgres"

	DefaultLocale = "en_US.utf8"
)

// Config describes the cluster to initialize.
type Config struct {
	DataDir string

	// ServiceUser owns the data directory and runs the cluster commands.
	// Empty means no ownership normalization and commands run as the
	// current user.
	ServiceUser string

	Locale string

	// Role and Password are the single credential applied on first run.
	Role     string
	Password string

	GraceWait time.Duration
}

// Bootstrapper performs first-run initialization of a PostgreSQL cluster.
type Bootstrapper struct {
	cfg    Config
	runner proc.Runner

	// connect is swappable so the credential step can be tested with a
	// mocked database.
	connect func(dsn string) (*gorm.DB, error)

	mu    sync.RWMutex
	phase Phase
}

// New returns a Bootstrapper for the given cluster configuration, filling
// in the fixed defaults for DataDir, Locale and GraceWait. ServiceUser is
// taken as given: callers that want the conventional account pass
// DefaultServiceUser.
func New(cfg Config) *Bootstrapper {
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir
	}
	if cfg.Locale == "" {
		cfg.Locale = DefaultLocale
	}
	if cfg.GraceWait == 0 {
		cfg.GraceWait = DefaultGraceWait
	}

	return &Bootstrapper{
		cfg:    cfg,
		runner: &proc.ExecRunner{User: cfg.ServiceUser},
		connect: func(dsn string) (*gorm.DB, error) {
			return db.Connect(db.Config{URL: dsn})
		},
		phase: PhasePending,
	}
}

// SetRunner replaces the command runner. Used by tests.
func (b *Bootstrapper) SetRunner(r proc.Runner) { b.runner = r }

// SetConnect replaces the database connector. Used by tests.
func (b *Bootstrapper) SetConnect(f func(dsn string) (*gorm.DB, error)) { b.connect = f }

// Phase reports the current bootstrap phase.
func (b *Bootstrapper) Phase() Phase {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.phase
}

func (b *Bootstrapper) setPhase(p Phase) {
	b.mu.Lock()
	b.phase = p
	b.mu.Unlock()
}

// Initialized reports whether the data directory already holds a cluster.
// A missing or empty directory means first-run initialization is needed.
func (b *Bootstrapper) Initialized() (bool, error) {
	entries, err := os.ReadDir(b.cfg.DataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read data directory %s: %w", b.cfg.DataDir, err)
	}
	return len(entries) > 0, nil
}

// NormalizePermissions creates the data directory if needed, hands
// ownership to the service account, and restricts the directory to it.
// This runs unconditionally on every start.
func (b *Bootstrapper) NormalizePermissions() error {
	if err := os.MkdirAll(b.cfg.DataDir, 0o700); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", b.cfg.DataDir, err)
	}

	if b.cfg.ServiceUser != "" {
		uid, gid, err := proc.LookupUser(b.cfg.ServiceUser)
		if err != nil {
			return err
		}

		err = filepath.WalkDir(b.cfg.DataDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			return os.Chown(path, uid, gid)
		})
		if err != nil {
			return fmt.Errorf("failed to change ownership of %s: %w", b.cfg.DataDir, err)
		}
	}

	if err := os.Chmod(b.cfg.DataDir, 0o700); err != nil {
		return fmt.Errorf("failed to restrict permissions on %s: %w", b.cfg.DataDir, err)
	}
	return nil
}

// Run executes the whole bootstrap sequence: normalize permissions, and if
// the data directory is empty, initialize the cluster and apply the
// credential. The first failing step aborts the sequence.
func (b *Bootstrapper) Run(ctx context.Context) error {
	b.setPhase(PhasePermissions)
	if err := b.NormalizePermissions(); err != nil {
		return err
	}

	initialized, err := b.Initialized()
	if err != nil {
		return err
	}
	if initialized {
		log.Printf("Data directory %s is not empty, skipping initialization", b.cfg.DataDir)
		b.setPhase(PhaseSkipped)
		return nil
	}

	b.setPhase(PhaseInitdb)
	log.Printf("Initializing cluster in %s (locale %s)...", b.cfg.DataDir, b.cfg.Locale)
	if err := b.runner.Run(ctx, "initdb", "-D", b.cfg.DataDir, "--locale", b.cfg.Locale); err != nil {
		return err
	}

	b.setPhase(PhaseStarting)
	logPath := filepath.Join(b.cfg.DataDir, "bootstrap.log")
	if err := b.runner.Run(ctx, "pg_ctl", "-W", "-D", b.cfg.DataDir, "-l", logPath, "start"); err != nil {
		return err
	}

	// Fixed grace wait, deliberately not a readiness check.
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(b.cfg.GraceWait):
	}

	b.setPhase(PhaseCredentials)
	if err := b.applyCredential(); err != nil {
		return err
	}

	b.setPhase(PhaseStopping)
	if err := b.runner.Run(ctx, "pg_ctl", "-D", b.cfg.DataDir, "-m", "fast", "-w", "stop"); err != nil {
		return err
	}

	b.setPhase(PhaseDone)
	log.Println("Cluster initialization complete")
	return nil
}

// applyCredential sets the application role's password on the temporary
// server over the local socket.
func (b *Bootstrapper) applyCredential() error {
	if b.cfg.Role == "" {
		return fmt.Errorf("no database role configured")
	}

	database, err := b.connect(db.LocalDSN(b.cfg.ServiceUser))
	if err != nil {
		return fmt.Errorf("failed to connect to temporary server: %w", err)
	}

	// ALTER ROLE does not take bind parameters for the password, so the
	// statement is assembled with pq quoting.
	stmt := fmt.Sprintf(
		"ALTER ROLE %s WITH PASSWORD %s",
		pq.QuoteIdentifier(b.cfg.Role),
		pq.QuoteLiteral(b.cfg.Password),
	)
	if err := database.Exec(stmt).Error; err != nil {
		return fmt.Errorf("failed to set password for role %s: %w", b.cfg.Role, err)
	}

	if sqlDB, err := database.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return nil
}
