package commands

import (
	"errors"
	"fmt"
	"io"
	"log"

	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/service"
)

// storageFailure reports a store error and picks the exit code.
// A failed commit is never downgraded: it always exits with exitcode.Fatal.
func storageFailure(errOut io.Writer, err error) int {
	switch {
	case service.IsFatal(err):
		fmt.Fprintf(errOut, "fatal: unrecoverable storage failure: %v\n", err)
		return exitcode.Fatal
	case errors.Is(err, service.ErrNotFound):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	default:
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.StorageError
	}
}

// newLogger returns a debug logger on errOut, or a silent one.
func newLogger(cfg *config.Config, errOut io.Writer) *log.Logger {
	if !cfg.Debug {
		return log.New(io.Discard, "", 0)
	}
	return log.New(errOut, "debug: ", log.Ltime)
}
