// Package cli parses arguments, wires the session and backend together,
// and dispatches to commands.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/go-kit/kit/log"

	"taskdeck/internal/auth"
	"taskdeck/internal/backend/taskapi"
	"taskdeck/internal/commands"
	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/service"
	"taskdeck/internal/session"
)

// Factory creates the auth session manager and the task backend.
// Used to inject fakes during tests.
type Factory func(ctx context.Context, cfg *config.Config, nav auth.Navigator, logger log.Logger) (*auth.Manager, service.Service, error)

// DefaultFactory wires the real session store, backend client, and session
// manager: the client reads the token from the session on every request
// and a 401 response forces a logout.
func DefaultFactory(ctx context.Context, cfg *config.Config, nav auth.Navigator, logger log.Logger) (*auth.Manager, service.Service, error) {
	sess := session.New(session.NewStore(cfg.StateDir()))
	client := taskapi.New(cfg.APIURL, sess, logger)
	mgr := auth.NewManager(sess, client, nav, logger)
	client.OnUnauthorized(mgr.ForceLogout)
	return mgr, client, nil
}

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  Factory
}

// NewDispatcher creates a new dispatcher with the given registry and factory.
func NewDispatcher(registry *commands.Registry, factory Factory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> dispatch to "list" command with no args
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, out, errOut)
	}

	cmdName := args[0]

	// If first token starts with -, it's an error (flags require a command)
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	// Create flag set with custom error handling
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var configDir string
	var apiURL string
	var quiet bool
	var debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.StringVar(&apiURL, "api", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	// Register command-specific flags
	cmd.RegisterFlags(fs)

	// Parse flags
	if err := fs.Parse(args); err != nil {
		errStr := err.Error()

		if strings.Contains(errStr, "flag needs an argument") {
			parts := strings.Split(errStr, ":")
			flagName := strings.TrimSpace(parts[len(parts)-1])
			fmt.Fprintf(errOut, "error: flag needs an argument: %s\n", flagName)
			return exitcode.UserError
		}

		if strings.HasPrefix(errStr, "flag provided but not defined:") {
			flagName := strings.TrimPrefix(errStr, "flag provided but not defined: ")
			fmt.Fprintf(errOut, "error: unknown flag: %s\n", flagName)
			return exitcode.UserError
		}

		fmt.Fprintf(errOut, "error: %s\n", errStr)
		return exitcode.UserError
	}

	// Check if first positional arg starts with - (should have been parsed as flag)
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	// Create config
	cfg, err := config.New(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug
	if apiURL != "" {
		cfg.APIURL = apiURL
	}

	var logger log.Logger
	if cfg.Debug {
		logger = log.NewLogfmtLogger(errOut)
		logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
	} else {
		logger = log.NewNopLogger()
	}

	// The navigator's location is the screen this command represents.
	nav := NewNavigator(errOut)
	nav.SetLocation(routeFor(cmd))

	sess, svc, err := d.factory(ctx, cfg, nav, logger)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.AuthError
	}

	// Protected screens go through the guard; a redirect becomes an exit
	// with a sign-in hint.
	if cmd.NeedsAuth() {
		if decision := auth.NewGuard(sess).Check(); !decision.Allow {
			fmt.Fprintln(errOut, "error: not logged in (run: taskdeck login <email>)")
			return exitcode.AuthError
		}
	}

	return cmd.Run(ctx, cfg, sess, svc, positionalArgs, out, errOut)
}

// routeFor maps a command to the screen it runs on.
func routeFor(cmd commands.Command) string {
	switch cmd.Name() {
	case "login", "logout", "register":
		return auth.EntryRoute
	default:
		return auth.TasksRoute
	}
}
