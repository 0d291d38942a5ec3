package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "tasklist help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, store service.Store, args []string, out, errOut io.Writer) int {
	WriteUsage(out, DefaultRegistry)
	return exitcode.Success
}

// WriteUsage prints one line per command in r, then the common flags and keys.
func WriteUsage(w io.Writer, r *Registry) {
	fmt.Fprintln(w, "Usage:")
	for _, cmd := range r.All() {
		fmt.Fprintf(w, "  %-30s %s\n", cmd.Usage(), cmd.Synopsis())
	}
	fmt.Fprint(w, helpFooter)
}

const helpFooter = `
Common flags:
  --config <dir>   Override config directory
  --db <path>      Override the task database file
  --quiet          Suppress informational output
  --debug          Print debug logs

Interactive keys:
  a        add a task
  enter    edit the selected task
  d        delete the selected task
  q        quit
`
