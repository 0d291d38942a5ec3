// Package main is the entry point for the tasklist program.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"tasklist/internal/backend/sqlite"
	"tasklist/internal/cli"
	"tasklist/internal/commands"
	"tasklist/internal/config"
	"tasklist/internal/service"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// The store is opened per command and closed by the dispatcher
	factory := func(ctx context.Context, cfg *config.Config) (service.Store, error) {
		return sqlite.New(ctx, cfg)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	// Fatal storage failures surface here as exitcode.Fatal
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
