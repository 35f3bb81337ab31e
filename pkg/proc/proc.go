package proc

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/user"
	"strconv"
	"syscall"
)

// Exec replaces the current process with the given command, inheriting the
// environment. It only returns on failure.
func Exec(argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("no command given")
	}

	path, err := exec.LookPath(argv[0])
	if err != nil {
		return fmt.Errorf("command not found: %s: %w", argv[0], err)
	}

	return syscall.Exec(path, argv, os.Environ())
}

// Runner executes external commands. The database bootstrapper depends on
// this interface so its sequencing can be tested without a real cluster.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands via os/exec, optionally as a different user.
type ExecRunner struct {
	// User, when set, is the service account the command runs as.
	// Requires the calling process to be privileged.
	User string

	// Output streams. Default to the calling process's stdout/stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes the command and waits for it to finish. A non-zero exit is
// returned as an error, matching fail-fast bootstrap semantics.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)

	cmd.Stdout = r.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if r.User != "" {
		cred, err := lookupCredential(r.User)
		if err != nil {
			return err
		}
		cmd.SysProcAttr = &syscall.SysProcAttr{Credential: cred}
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", name, err)
	}
	return nil
}

// LookupUser resolves a service account to numeric uid and gid.
func LookupUser(name string) (uid, gid int, err error) {
	u, err := user.Lookup(name)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to look up user %s: %w", name, err)
	}

	uid, err = strconv.Atoi(u.Uid)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid uid for %s: %w", name, err)
	}
	gid, err = strconv.Atoi(u.Gid)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid gid for %s: %w", name, err)
	}
	return uid, gid, nil
}

func lookupCredential(name string) (*syscall.Credential, error) {
	uid, gid, err := LookupUser(name)
	if err != nil {
		return nil, err
	}
	return &syscall.Credential{Uid: uint32(uid), Gid: uint32(gid)}, nil
}
