package cmdregistry

import (
	"context"
	"fmt"
	"io"
	"strings"

	"devenv/cli/devenv/internal/config"
	"devenv/cli/devenv/internal/depcache"
	"devenv/cli/devenv/internal/paths"
	"devenv/cli/devenv/internal/prereq"
	"devenv/cli/devenv/internal/prompt"
	"devenv/cli/devenv/internal/runner"
)

// Context carries the pre-parsed data and handles that command handlers need.
type Context struct {
	Args     []string
	Config   config.ProjectConfig
	Paths    paths.Project
	Runner   *runner.Runner
	Checker  *prereq.Checker
	Checks   prereq.Env
	Prompter prompt.Prompter
	Cache    depcache.Cache
	Out      io.Writer
}

// WithArgs returns a shallow copy of c carrying args.
func (c *Context) WithArgs(args []string) *Context {
	cp := *c
	cp.Args = args
	return &cp
}

// Handler executes a command given the shared context.
type Handler func(ctx context.Context, c *Context) error

// Command is a named action shown in usage and in the menu.
type Command struct {
	Name        string
	Description string
	Handler     Handler
}

// Registry holds commands in registration order.
type Registry struct {
	commands []Command
	index    map[string]int
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register appends cmd. It panics if the name is empty or already exists.
func (r *Registry) Register(cmd Command) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" || name != cmd.Name {
		panic(fmt.Sprintf("invalid command name %q", cmd.Name))
	}
	if cmd.Handler == nil {
		panic(fmt.Sprintf("command %s has no handler", name))
	}
	if _, exists := r.index[name]; exists {
		panic(fmt.Sprintf("command %s already registered", name))
	}
	r.index[name] = len(r.commands)
	r.commands = append(r.commands, cmd)
}

// Lookup returns the command and whether it exists.
func (r *Registry) Lookup(name string) (Command, bool) {
	i, ok := r.index[name]
	if !ok {
		return Command{}, false
	}
	return r.commands[i], true
}

// At returns the command at 1-based position n.
func (r *Registry) At(n int) (Command, bool) {
	if n < 1 || n > len(r.commands) {
		return Command{}, false
	}
	return r.commands[n-1], true
}

// Commands returns a copy of the registered commands in order.
func (r *Registry) Commands() []Command {
	return append([]Command(nil), r.commands...)
}

// Names returns the command names in order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.commands))
	for i, c := range r.commands {
		out[i] = c.Name
	}
	return out
}

// Len returns the number of registered commands.
func (r *Registry) Len() int { return len(r.commands) }
