// Package dbboot implements first-run initialization of the PostgreSQL
// cluster backing the application.
//
// Ownership and permissions on the data directory are normalized on every
// start. Initialization itself runs exactly once: only when the data
// directory is empty does the bootstrapper create a cluster, start it
// temporarily, set the application role's password, and stop it again.
// Any step failing aborts the sequence, matching fail-fast entrypoint
// semantics.
//
// The sequence is reported as a Phase so the status server can expose
// bootstrap progress.
package dbboot
