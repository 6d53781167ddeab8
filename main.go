// Command sealwalk encrypts and decrypts directory trees with an authenticated cipher.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/idelchi/sealwalk/internal/commands"
	"github.com/idelchi/sealwalk/internal/config"
)

// Global variable for CI stamping.
var version = "unknown - unofficial & generated by unknown"

func main() {
	// An interrupt stops the walk between files; files in flight finish.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := &config.Config{}

	root := commands.NewRootCommand(cfg, version)

	if err := root.ExecuteContext(ctx); err != nil {
		if commands.IsShown(err) {
			return
		}

		fmt.Fprintf(os.Stderr, "error: %v\n", err)

		stop()
		os.Exit(1) //nolint:gocritic // stop is called explicitly above
	}
}
