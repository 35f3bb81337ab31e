package certgen

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultDir is where the proxy expects to find its certificate pair.
	DefaultDir = "/etc/nginx/certs"

	DefaultKeyFile  = "server.key"
	DefaultCertFile = "server.crt"

	// DefaultCommonName matches the subject the proxy serves under in
	// development deployments.
	DefaultCommonName = "localhost"

	DefaultKeyBits  = 2048
	DefaultValidity = 365 * 24 * time.Hour
)

// Options describes the certificate pair to ensure.
type Options struct {
	Dir        string
	KeyFile    string
	CertFile   string
	CommonName string
	KeyBits    int
	Validity   time.Duration
}

// DefaultOptions returns the fixed paths and parameters used by the proxy
// bootstrap.
func DefaultOptions() Options {
	return Options{
		Dir:        DefaultDir,
		KeyFile:    DefaultKeyFile,
		CertFile:   DefaultCertFile,
		CommonName: DefaultCommonName,
		KeyBits:    DefaultKeyBits,
		Validity:   DefaultValidity,
	}
}

// KeyPath returns the full path to the private key file.
func (o Options) KeyPath() string {
	return filepath.Join(o.Dir, o.KeyFile)
}

// CertPath returns the full path to the certificate file.
func (o Options) CertPath() string {
	return filepath.Join(o.Dir, o.CertFile)
}

// PairExists reports whether both members of the pair are present.
func (o Options) PairExists() bool {
	if _, err := os.Stat(o.KeyPath()); err != nil {
		return false
	}
	if _, err := os.Stat(o.CertPath()); err != nil {
		return false
	}
	return true
}

// Ensure creates the certificate directory and, if either file of the pair
// is missing, generates a new key and self-signed certificate. An existing
// complete pair is never touched. It reports whether a new pair was written.
func Ensure(opts Options) (bool, error) {
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return false, fmt.Errorf("failed to create certificate directory %s: %w", opts.Dir, err)
	}

	if opts.PairExists() {
		return false, nil
	}

	if err := generate(opts); err != nil {
		return false, err
	}
	return true, nil
}

func generate(opts Options) error {
	bits := opts.KeyBits
	if bits == 0 {
		bits = DefaultKeyBits
	}
	validity := opts.Validity
	if validity == 0 {
		validity = DefaultValidity
	}

	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return fmt.Errorf("failed to generate private key: %w", err)
	}

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return fmt.Errorf("failed to generate serial number: %w", err)
	}

	now := time.Now()
	template := x509.Certificate{
		SerialNumber: serial,
		Subject: pkix.Name{
			CommonName: opts.CommonName,
		},
		NotBefore:             now,
		NotAfter:              now.Add(validity),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		DNSNames:              []string{opts.CommonName},
	}

	// Self-signed: the template is its own parent.
	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		return fmt.Errorf("failed to create certificate: %w", err)
	}

	keyPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	certPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "CERTIFICATE",
		Bytes: der,
	})

	if err := os.WriteFile(opts.KeyPath(), keyPEM, 0o600); err != nil {
		return fmt.Errorf("failed to write private key %s: %w", opts.KeyPath(), err)
	}
	if err := os.WriteFile(opts.CertPath(), certPEM, 0o644); err != nil {
		return fmt.Errorf("failed to write certificate %s: %w", opts.CertPath(), err)
	}

	return nil
}
