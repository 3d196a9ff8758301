// Package passthrough holds run, exec and tunnel. They forward their
// arguments straight to compose or ssh and are not part of the numbered
// registry.
package passthrough

import (
	"context"
	"errors"
	"fmt"

	"devenv/cli/devenv/internal/cmdregistry"
	"devenv/cli/devenv/internal/prereq"
	"devenv/cli/devenv/internal/ssh"
)

// ErrMissingArgs is returned when a pass-through command has nothing to forward.
var ErrMissingArgs = errors.New("missing arguments")

// Command describes a pass-through entry for usage output.
type Command struct {
	Name     string
	Synopsis string
	Handler  cmdregistry.Handler
}

// Commands returns the pass-through commands in usage order.
func Commands() []Command {
	return []Command{
		{Name: "run", Synopsis: "run args...           run a one-off container of the app service", Handler: handleRun},
		{Name: "exec", Synopsis: "exec args...          execute in the running app container", Handler: handleExec},
		{Name: "tunnel", Synopsis: "tunnel host [L...]    open an SSH tunnel (-L specs, default from config)", Handler: handleTunnel},
	}
}

// Lookup returns the handler of a pass-through command.
func Lookup(name string) (cmdregistry.Handler, bool) {
	for _, c := range Commands() {
		if c.Name == name {
			return c.Handler, true
		}
	}
	return nil, false
}

func handleRun(ctx context.Context, c *cmdregistry.Context) error {
	if len(c.Args) == 0 {
		return fmt.Errorf("run: %w", ErrMissingArgs)
	}
	return c.Runner.ComposeRun(ctx, c.Config.Services.App, c.Args...)
}

func handleExec(ctx context.Context, c *cmdregistry.Context) error {
	if len(c.Args) == 0 {
		return fmt.Errorf("exec: %w", ErrMissingArgs)
	}
	return c.Runner.ComposeExec(ctx, c.Config.Services.App, c.Args...)
}

func handleTunnel(ctx context.Context, c *cmdregistry.Context) error {
	if len(c.Args) == 0 {
		return fmt.Errorf("tunnel: host required: %w", ErrMissingArgs)
	}
	if err := c.Checker.Gate(ctx, prereq.SSH(c.Checks), prereq.Silent); err != nil {
		return err
	}
	host := c.Args[0]
	forwards := c.Args[1:]
	if len(forwards) == 0 {
		forwards = c.Config.SSH.Tunnels
	}
	user := c.Checks.Profile.Username(ctx, c.Config.SSH.UserEnv)
	key := ssh.KeyPath(c.Paths.SSHDir, c.Config.SSH.Key)
	fmt.Fprintf(c.Out, "Tunneling %v via %s (Ctrl-C to close)\n", forwards, ssh.Target(user, host))
	return c.Runner.Host(ctx, "ssh", ssh.TunnelArgs(key, user, host, forwards)...)
}
