// Package certgen provisions the self-signed TLS certificate pair used by
// the reverse proxy.
//
// The pair is created once on first start and never rotated here: Ensure
// generates a new key and certificate only when either file is missing,
// and leaves an existing complete pair untouched.
//
// # Usage
//
//	generated, err := certgen.Ensure(certgen.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Files
//
//   - server.key: PEM-encoded 2048-bit RSA private key (mode 0600)
//   - server.crt: PEM-encoded self-signed certificate (mode 0644)
package certgen
