package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdeck/internal/auth"
	"taskdeck/internal/backend/taskapi"
	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/service"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct{}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Sign in by email" }
func (c *LoginCmd) Usage() string     { return "taskdeck login [common flags] <email>" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, sess *auth.Manager, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: email required")
		return exitcode.UserError
	}
	email := args[0]
	if !validEmail(email) {
		fmt.Fprintf(errOut, "error: invalid email: %s\n", email)
		return exitcode.UserError
	}

	// Already signed in as this user: nothing to do.
	if sess.IsAuthenticated() {
		if u := sess.CurrentUser(); u != nil && u.Email == email {
			if !cfg.Quiet {
				fmt.Fprintln(out, "already logged in")
			}
			return exitcode.Success
		}
	}

	if _, err := sess.Login(ctx, email); err != nil {
		if taskapi.IsUnauthorized(err) {
			fmt.Fprintf(errOut, "error: email not registered (run: taskdeck register %s)\n", email)
			return exitcode.AuthError
		}
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
