package commands

import (
	"context"
	"log"

	"tasklist/internal/service"
)

// SetRunScreen swaps the interactive screen runner and returns a restore func.
func SetRunScreen(fn func(ctx context.Context, store service.Store, title string, logger *log.Logger) error) func() {
	prev := runScreen
	runScreen = fn
	return func() { runScreen = prev }
}
