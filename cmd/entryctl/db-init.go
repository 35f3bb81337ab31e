package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/entrykit/entrykit/pkg/config"
	"github.com/entrykit/entrykit/pkg/dbboot"
	"github.com/entrykit/entrykit/pkg/proc"
)

// dbInitCmd represents the db init command
var dbInitCmd = &cobra.Command{
	Use:   "init -- <command...>",
	Short: "Initialize the cluster on first run, then exec the server command",
	Long: `Initialize the database cluster on first run, then exec the original command.

Ownership and permissions on the data directory are normalized on every
start. If the directory is empty, a new cluster is created with the
configured locale, started temporarily, the application role's password is
set, and the server is stopped cleanly. Finally this process is replaced
by the command after --, so normal server startup proceeds under the
now-initialized data directory.

Any step failing aborts before the final command runs.

Example:
  entryctl db init -- postgres`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Get()

		boot := dbboot.New(dbboot.Config{
			DataDir:     cfg.DataDir,
			ServiceUser: cfg.ServiceUser,
			Locale:      cfg.Locale,
			Role:        cfg.DBRole,
			Password:    cfg.DBPassword,
		})

		if err := boot.Run(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Cluster bootstrap failed: %v\n", err)
			os.Exit(1)
		}

		if err := proc.Exec(args); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to exec %s: %v\n", args[0], err)
			os.Exit(1)
		}
	},
}

func init() {
	dbCmd.AddCommand(dbInitCmd)
}
