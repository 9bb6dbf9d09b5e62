package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdeck/internal/auth"
	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskdeck help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, sess *auth.Manager, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskdeck                                        List your tasks
  taskdeck list [common flags] [--long]           List your tasks
  taskdeck add [common flags] --desc <text> <title...>
  taskdeck done [common flags] <n>                Toggle task completion
  taskdeck edit [common flags] [--title <text>] [--desc <text>] <n>
  taskdeck rm [common flags] <n>                  Delete a task
  taskdeck login [common flags] <email>
  taskdeck register [common flags] <email> [name...]
  taskdeck logout [common flags]
  taskdeck whoami [common flags]
  taskdeck help
  taskdeck version

Common flags:
  --config <dir>   Override config directory
  --api <url>      Override API base URL
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
