// Package proc runs and replaces processes on behalf of the bootstrappers.
//
// Exec performs the final exec handoff: the current process image is
// replaced by the target program, which inherits the PID so the container's
// lifecycle tracks the daemon rather than the bootstrap script. Nothing
// runs in-process after a successful Exec.
//
// Runner abstracts the external commands (initdb, pg_ctl) the database
// bootstrapper issues, optionally dropping to a service account.
package proc
