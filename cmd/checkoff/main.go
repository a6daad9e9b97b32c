package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/checkoff/internal/cli"
)

// Set via -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return cli.Execute(ctx, cli.BuildInfo{Version: version, Commit: commit, Date: date})
}
