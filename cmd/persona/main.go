// Command persona builds marketing personas from the documents in a Drive folder.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/persona-cli/internal/adapters/driving/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetServiceFactory(buildServices)

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
