package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/entrykit/entrykit/pkg/certgen"
	"github.com/entrykit/entrykit/pkg/config"
)

// certEnsureCmd represents the cert ensure command
var certEnsureCmd = &cobra.Command{
	Use:   "ensure",
	Short: "Ensure the self-signed certificate pair exists",
	Long: `Ensure the self-signed certificate pair exists.

If either the key or the certificate file is missing, a new 2048-bit RSA
key and a 365-day self-signed certificate are generated. An existing
complete pair is left untouched, so running this repeatedly is safe.

Example:
  entryctl cert ensure
  entryctl cert ensure --dir /srv/certs --common-name proxy.internal`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := certOptionsFromFlags(cmd)

		generated, err := certgen.Ensure(opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to ensure certificate pair: %v\n", err)
			os.Exit(1)
		}

		if generated {
			fmt.Printf("Generated new certificate pair in %s\n", opts.Dir)
		} else {
			fmt.Printf("Certificate pair in %s already exists\n", opts.Dir)
		}
	},
}

func init() {
	certCmd.AddCommand(certEnsureCmd)
	addCertFlags(certEnsureCmd)
}

func addCertFlags(cmd *cobra.Command) {
	cfg := config.Get()
	cmd.Flags().StringP("dir", "d", cfg.CertDir, "Certificate directory")
	cmd.Flags().StringP("common-name", "n", cfg.CertCommonName, "Certificate subject common name")
}

func certOptionsFromFlags(cmd *cobra.Command) certgen.Options {
	opts := certgen.DefaultOptions()
	opts.Dir, _ = cmd.Flags().GetString("dir")
	opts.CommonName, _ = cmd.Flags().GetString("common-name")
	return opts
}
