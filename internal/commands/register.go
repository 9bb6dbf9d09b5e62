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
)

func init() {
	Register(&RegisterCmd{})
}

// RegisterCmd implements the register command: create the user, then sign
// in with the new email.
type RegisterCmd struct{}

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return []string{"signup"} }
func (c *RegisterCmd) Synopsis() string  { return "Create an account and sign in" }
func (c *RegisterCmd) Usage() string     { return "taskdeck register [common flags] <email> [name...]" }
func (c *RegisterCmd) NeedsAuth() bool   { return false }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RegisterCmd) Run(ctx context.Context, cfg *config.Config, sess *auth.Manager, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: email required")
		return exitcode.UserError
	}
	email := args[0]
	if !validEmail(email) {
		fmt.Fprintf(errOut, "error: invalid email: %s\n", email)
		return exitcode.UserError
	}
	name := strings.TrimSpace(strings.Join(args[1:], " "))

	if _, err := sess.Register(ctx, service.RegisterUser{Email: email, Name: name}); err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if _, err := sess.Login(ctx, email); err != nil {
		fmt.Fprintf(errOut, "error: user created but login failed (run: taskdeck login %s)\n", email)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
