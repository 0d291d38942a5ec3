package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/service"
	"tasklist/internal/tui"
)

func init() {
	Register(&UICmd{})
}

// runScreen runs the interactive screen. Replaced in tests.
var runScreen = tui.Run

// UICmd implements the interactive task list screen.
// It runs when tasklist is called without a command.
type UICmd struct{}

func (c *UICmd) Name() string      { return "ui" }
func (c *UICmd) Aliases() []string { return nil }
func (c *UICmd) Synopsis() string  { return "Open the interactive task list" }
func (c *UICmd) Usage() string     { return "tasklist [ui]" }
func (c *UICmd) NeedsStore() bool  { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, store service.Store, args []string, out, errOut io.Writer) int {
	// The screen owns the terminal, so its log goes to a file.
	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.ConfigError
	}
	logger := log.New(io.Discard, "", log.LstdFlags)
	if cfg.Debug {
		logger.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	}
	f, err := tea.LogToFileWith(cfg.LogPath(), "tasklist", logger)
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to open log file: %v\n", err)
		return exitcode.ConfigError
	}
	defer f.Close()

	err = runScreen(ctx, store, cfg.Title, logger)
	switch {
	case err == nil:
		return exitcode.Success
	case errors.Is(err, tea.ErrProgramKilled), errors.Is(err, context.Canceled):
		return exitcode.Success
	case service.IsFatal(err):
		return storageFailure(errOut, err)
	default:
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
}
