package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"taskdeck/internal/auth"
	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/service"
	"taskdeck/internal/tasklist"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command: toggle the completion flag of the
// task at the given 1-based position.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle task completion" }
func (c *DoneCmd) Usage() string     { return "taskdeck done [common flags] <n>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, sess *auth.Manager, svc service.Service, args []string, out, errOut io.Writer) int {
	num, code := parseTaskNum(args, errOut)
	if code != exitcode.Success {
		return code
	}

	email, code := currentEmail(sess, errOut)
	if code != exitcode.Success {
		return code
	}

	ctrl := tasklist.New(svc, email)
	if _, err := ctrl.Load(ctx); err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	updated, err := ctrl.Toggle(ctx, num)
	if err != nil {
		if strings.Contains(err.Error(), "out of range") {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		if updated.Completed {
			fmt.Fprintln(out, "marked as completed")
		} else {
			fmt.Fprintln(out, "marked as incomplete")
		}
	}
	return exitcode.Success
}

// parseTaskNum parses the single positional 1-based task number.
func parseTaskNum(args []string, errOut io.Writer) (int, int) {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: task number required")
		return 0, exitcode.UserError
	}
	num, err := strconv.Atoi(args[0])
	if err != nil || num < 1 {
		fmt.Fprintf(errOut, "error: invalid task number: %s\n", args[0])
		return 0, exitcode.UserError
	}
	return num, exitcode.Success
}
