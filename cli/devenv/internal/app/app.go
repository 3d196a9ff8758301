// Package app wires configuration, the registry and the interactive menu
// into the dispatcher behind the cobra root command.
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"

	"devenv/cli/devenv/internal/cmdregistry"
	"devenv/cli/devenv/internal/commands"
	"devenv/cli/devenv/internal/commands/passthrough"
	"devenv/cli/devenv/internal/config"
	"devenv/cli/devenv/internal/depcache"
	"devenv/cli/devenv/internal/hostprofile"
	"devenv/cli/devenv/internal/menu"
	"devenv/cli/devenv/internal/paths"
	"devenv/cli/devenv/internal/prereq"
	"devenv/cli/devenv/internal/prompt"
	"devenv/cli/devenv/internal/runner"
)

// ErrUsage marks unknown commands and malformed invocations.
var ErrUsage = errors.New("usage error")

// Options are the inputs main resolves before building the App.
type Options struct {
	Name    string
	Env     config.Env
	Config  config.ProjectConfig
	Root    string
	Exec    runner.Executor
	Profile hostprofile.Profile
	Stdio   prompt.SurveyIO
}

// App resolves command names to handlers.
type App struct {
	Name     string
	Registry *cmdregistry.Registry
	Context  *cmdregistry.Context
	Menu     *menu.Menu
	Out      io.Writer
}

// New builds the registry and the shared handler context.
func New(o Options) *App {
	name := o.Name
	if strings.TrimSpace(name) == "" {
		name = "devenv"
	}
	lines := bufio.NewReader(o.Stdio.In)
	var p prompt.Prompter = prompt.New(o.Stdio, lines)
	if o.Env.AssumeYes {
		p = prompt.Fixed{Answer: true}
	}
	pp := paths.Resolve(o.Root, o.Config, o.Env.SSHDir)
	r := &runner.Runner{
		Exec:       o.Exec,
		DryRun:     o.Env.DryRun,
		Out:        o.Stdio.Out,
		ComposeCmd: o.Config.Compose.Command,
		Project:    o.Config.Project,
		Files:      o.Config.Compose.Files,
	}
	reg := cmdregistry.New()
	commands.Register(reg)
	return &App{
		Name:     name,
		Registry: reg,
		Out:      o.Stdio.Out,
		Menu:     &menu.Menu{Registry: reg, In: lines, Out: o.Stdio.Out},
		Context: &cmdregistry.Context{
			Config:  o.Config,
			Paths:   pp,
			Runner:  r,
			Checker: &prereq.Checker{Out: o.Stdio.Out},
			Checks: prereq.Env{
				Config:  o.Config,
				Paths:   pp,
				Profile: o.Profile,
				Runner:  r,
			},
			Prompter: p,
			Cache:    depcache.Cache{Manifest: pp.Manifest, File: pp.CacheFile},
			Out:      o.Stdio.Out,
		},
	}
}

// Dispatch runs the command called name with args. Pass-through commands are
// resolved before the registry; unknown names print usage and return ErrUsage.
func (a *App) Dispatch(ctx context.Context, name string, args []string) error {
	entry := log.WithFields(log.Fields{"command": name, "args": len(args)})
	if h, ok := passthrough.Lookup(name); ok {
		entry.Debug("dispatch pass-through")
		err := h(ctx, a.Context.WithArgs(args))
		if errors.Is(err, passthrough.ErrMissingArgs) {
			a.Usage()
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		return err
	}
	cmd, ok := a.Registry.Lookup(name)
	if !ok {
		a.Usage()
		return fmt.Errorf("%w: unknown command %q", ErrUsage, name)
	}
	entry.Debug("dispatch")
	return cmd.Handler(ctx, a.Context.WithArgs(args))
}

// Interactive shows the menu and dispatches the selection.
func (a *App) Interactive(ctx context.Context) error {
	sel, err := a.Menu.Select()
	if err != nil {
		return err
	}
	return a.Dispatch(ctx, sel.Name, sel.Args)
}

var heading = color.New(color.Bold).SprintFunc()

// Usage prints the command overview.
func (a *App) Usage() {
	w := a.Out
	fmt.Fprintf(w, "Usage: %s [--help | command [args...] | run args... | exec args... | tunnel host args...]\n\n", a.Name)
	fmt.Fprintln(w, "Without arguments an interactive menu is shown.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, heading("Commands:"))
	width := 0
	for _, n := range a.Registry.Names() {
		if len(n) > width {
			width = len(n)
		}
	}
	for _, c := range a.Registry.Commands() {
		fmt.Fprintf(w, "  %-*s  %s\n", width, c.Name, c.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, heading("Pass-through:"))
	for _, c := range passthrough.Commands() {
		fmt.Fprintf(w, "  %s\n", c.Synopsis)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, heading("Environment:"))
	fmt.Fprint(w, `  DEVENV_CONFIG      project file (default devenv.yaml)
  DEVENV_DRY_RUN=1   print commands instead of running them
  DEVENV_DEBUG=1     log executed commands
  DEVENV_LOG_LEVEL   debug, info, warn or error (default info)
  DEVENV_SSH_DIR     SSH directory (default ~/.ssh)
  DEVENV_YES=1       answer yes to every confirmation
`)
}
