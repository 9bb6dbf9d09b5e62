package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskdeck/internal/auth"
	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/service"
	"taskdeck/internal/tasklist"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command.
type EditCmd struct {
	title       string
	description string
}

// SetTitle sets the new title (for testing).
func (c *EditCmd) SetTitle(title string) {
	c.title = title
}

// SetDescription sets the new description (for testing).
func (c *EditCmd) SetDescription(desc string) {
	c.description = desc
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Edit a task's title or description" }
func (c *EditCmd) Usage() string {
	return "taskdeck edit [common flags] [--title <text>] [--desc <text>] <n>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.title, "title", "", "")
	fs.StringVar(&c.description, "desc", "", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, sess *auth.Manager, svc service.Service, args []string, out, errOut io.Writer) int {
	num, code := parseTaskNum(args, errOut)
	if code != exitcode.Success {
		return code
	}

	var update service.UpdateTask
	if title := strings.TrimSpace(c.title); title != "" {
		if len(title) < minTitleLen {
			fmt.Fprintf(errOut, "error: title must be at least %d characters\n", minTitleLen)
			return exitcode.UserError
		}
		update.Title = &title
	}
	if desc := strings.TrimSpace(c.description); desc != "" {
		update.Description = &desc
	}
	if update.Title == nil && update.Description == nil {
		fmt.Fprintln(errOut, "error: nothing to update (use --title or --desc)")
		return exitcode.UserError
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

	if err := ctrl.Update(ctx, num, update); err != nil {
		if strings.Contains(err.Error(), "out of range") {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
