// Package cmdtest builds command contexts over a temporary project and a
// recording executor.
package cmdtest

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"devenv/cli/devenv/internal/cmdregistry"
	"devenv/cli/devenv/internal/depcache"
	"devenv/cli/devenv/internal/prereq"
	"devenv/cli/devenv/internal/prompt"
	"devenv/cli/devenv/internal/runner"
	"devenv/cli/devenv/internal/testutil"
)

type Env struct {
	Ctx     *cmdregistry.Context
	Project *testutil.Project
	Exec    *testutil.FakeExec
	Out     *bytes.Buffer
}

// New returns an Env whose prompter answers from input, one line per question.
func New(t *testing.T, input string) *Env {
	t.Helper()
	p := testutil.NewProject(t)
	fx := testutil.NewFakeExec()
	var out bytes.Buffer
	r := &runner.Runner{
		Exec:       fx,
		Out:        &out,
		ComposeCmd: p.Config.Compose.Command,
		Project:    p.Config.Project,
		Files:      p.Config.Compose.Files,
	}
	return &Env{
		Project: p,
		Exec:    fx,
		Out:     &out,
		Ctx: &cmdregistry.Context{
			Config:   p.Config,
			Paths:    p.Paths,
			Runner:   r,
			Checker:  &prereq.Checker{Out: &out},
			Checks:   prereq.Env{Config: p.Config, Paths: p.Paths, Profile: p.Profile, Runner: r},
			Prompter: prompt.Line{In: bufio.NewReader(strings.NewReader(input)), Out: &out},
			Cache:    depcache.Cache{Manifest: p.Paths.Manifest, File: p.Paths.CacheFile},
			Out:      &out,
		},
	}
}

// Run invokes the registered command name with args.
func (e *Env) Run(t *testing.T, register func(*cmdregistry.Registry), name string, args ...string) error {
	t.Helper()
	r := cmdregistry.New()
	register(r)
	cmd, ok := r.Lookup(name)
	if !ok {
		t.Fatalf("command %q not registered", name)
	}
	return cmd.Handler(context.Background(), e.Ctx.WithArgs(args))
}

// Lines returns recorded command lines without the prerequisite checks.
func (e *Env) Lines() []string {
	var out []string
	for _, l := range e.Exec.Lines() {
		if l == "docker info" || l == "docker compose version" {
			continue
		}
		out = append(out, l)
	}
	return out
}
