package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/entrykit/entrykit/pkg/certgen"
)

// certWatchCmd represents the cert watch command
var certWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the certificate directory and restore a removed pair",
	Long: `Watch the certificate directory and restore the pair if a member is removed.

The pair is only regenerated when the key or the certificate goes missing;
while both files exist they are never touched.

Example:
  entryctl cert watch`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := certOptionsFromFlags(cmd)

		if err := watchCertificates(opts); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to watch certificates: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	certCmd.AddCommand(certWatchCmd)
	addCertFlags(certWatchCmd)
}

func watchCertificates(opts certgen.Options) error {
	// Make sure there is something to watch before starting
	if _, err := certgen.Ensure(opts); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(opts.Dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", opts.Dir, err)
	}

	fmt.Printf("Watching %s for certificate changes\n", opts.Dir)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			fmt.Printf("[%s] %s removed, checking pair...\n", time.Now().Format(time.RFC3339), event.Name)
			generated, err := certgen.Ensure(opts)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error restoring pair: %v\n", err)
				continue
			}
			if generated {
				fmt.Println("Certificate pair regenerated")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
		case <-sigChan:
			fmt.Println("\nShutting down...")
			return nil
		}
	}
}
