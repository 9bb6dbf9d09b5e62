package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdeck/internal/auth"
	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/output"
	"taskdeck/internal/service"
	"taskdeck/internal/tasklist"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command. This is the default command when
// taskdeck is run with no arguments.
type ListCmd struct {
	long bool
}

// SetLong enables long output (for testing).
func (c *ListCmd) SetLong(v bool) {
	c.long = v
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List your tasks" }
func (c *ListCmd) Usage() string     { return "taskdeck list [common flags] [--long]" }
func (c *ListCmd) NeedsAuth() bool   { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.long, "long", false, "")
	fs.BoolVar(&c.long, "l", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, sess *auth.Manager, svc service.Service, args []string, out, errOut io.Writer) int {
	email, code := currentEmail(sess, errOut)
	if code != exitcode.Success {
		return code
	}

	ctrl := tasklist.New(svc, email)
	tasks, err := ctrl.Load(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	for i, task := range tasks {
		if c.long {
			output.FormatTaskLong(out, i+1, task)
		} else {
			output.FormatTask(out, i+1, task)
		}
	}
	return exitcode.Success
}
