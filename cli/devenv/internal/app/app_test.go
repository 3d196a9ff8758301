package app

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devenv/cli/devenv/internal/config"
	"devenv/cli/devenv/internal/menu"
	"devenv/cli/devenv/internal/prereq"
	"devenv/cli/devenv/internal/prompt"
	"devenv/cli/devenv/internal/runner"
	"devenv/cli/devenv/internal/testutil"
)

type harness struct {
	app  *App
	proj *testutil.Project
	fx   *testutil.FakeExec
	out  *bytes.Buffer
}

func newHarness(t *testing.T, input string) *harness {
	t.Helper()
	p := testutil.NewProject(t)
	fx := testutil.NewFakeExec()
	var out bytes.Buffer
	in, w := testutil.Stdio(input, &out)
	a := New(Options{
		Name:    "devenv",
		Env:     config.Env{SSHDir: filepath.Join(p.Root, "ssh")},
		Config:  p.Config,
		Root:    p.Root,
		Exec:    fx,
		Profile: p.Profile,
		Stdio:   prompt.SurveyIO{In: in, Out: w, Err: w},
	})
	return &harness{app: a, proj: p, fx: fx, out: &out}
}

func (h *harness) run(args ...string) error {
	return Execute(context.Background(), h.app, args)
}

func (h *harness) composeLines() []string {
	var lines []string
	for _, l := range h.fx.Lines() {
		if l == "docker info" || l == "docker compose version" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

func TestUnknownCommandPrintsUsage(t *testing.T) {
	h := newHarness(t, "")
	err := h.run("frobnicate")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUsage))
	assert.Equal(t, 1, ExitCode(err))
	assert.Contains(t, h.out.String(), "Usage: devenv")
	assert.Empty(t, h.fx.Lines())
}

func TestHelpWinsAnywhere(t *testing.T) {
	for _, args := range [][]string{{"--help"}, {"-h"}, {"up", "--help"}, {"frobnicate", "-h"}, {"exec", "ls", "--help"}} {
		h := newHarness(t, "")
		err := h.run(args...)
		assert.NoError(t, err, "%v", args)
		assert.Equal(t, 0, ExitCode(err))
		assert.Contains(t, h.out.String(), "Commands:")
		assert.Empty(t, h.fx.Lines(), "%v", args)
	}
}

func TestUsageListsEveryCommand(t *testing.T) {
	h := newHarness(t, "")
	h.app.Usage()
	for _, name := range h.app.Registry.Names() {
		assert.Contains(t, h.out.String(), name)
	}
	for _, name := range []string{"run args", "exec args", "tunnel host"} {
		assert.Contains(t, h.out.String(), name)
	}
}

func TestMenuSelectionMatchesDirectInvocation(t *testing.T) {
	direct := newHarness(t, "")
	require.NoError(t, direct.run("up"))

	viaMenu := newHarness(t, "2\n")
	require.NoError(t, viaMenu.run())

	assert.Equal(t, direct.composeLines(), viaMenu.composeLines())
	assert.Equal(t, []string{"docker compose -p shop up -d"}, viaMenu.composeLines())
	assert.Contains(t, viaMenu.out.String(), "2) up")
}

func TestMenuByNameAndEOF(t *testing.T) {
	h := newHarness(t, "status\n")
	require.NoError(t, h.run())
	assert.Equal(t, []string{"docker compose -p shop ps"}, h.composeLines())

	h = newHarness(t, "")
	err := h.run()
	assert.True(t, errors.Is(err, menu.ErrNoSelection))
	assert.Equal(t, 1, ExitCode(err))
}

func TestExecPropagatesExitCode(t *testing.T) {
	h := newHarness(t, "")
	h.fx.Codes["docker compose -p shop exec app echo hi"] = 3
	err := h.run("exec", "echo", "hi")
	var ee *runner.ExitError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, 3, ExitCode(err))
	assert.Equal(t, []string{"docker compose -p shop exec app echo hi"}, h.fx.Lines())
}

func TestPassThroughKeepsFlags(t *testing.T) {
	h := newHarness(t, "")
	require.NoError(t, h.run("run", "pytest", "-x", "--lf"))
	assert.Equal(t, []string{"docker compose -p shop run --rm app pytest -x --lf"}, h.fx.Lines())
}

func TestPassThroughWithoutArgsIsUsage(t *testing.T) {
	h := newHarness(t, "")
	err := h.run("exec")
	assert.True(t, errors.Is(err, ErrUsage))
	assert.Contains(t, h.out.String(), "Usage:")
}

func TestUnchangedManifestDoesNotPrompt(t *testing.T) {
	h := newHarness(t, "")
	require.NoError(t, h.app.Context.Cache.Store())

	require.NoError(t, h.run("up"))
	assert.NotContains(t, h.out.String(), "Dependencies changed")
	assert.Equal(t, []string{"docker compose -p shop up -d"}, h.composeLines())
}

func TestChangedManifestPromptsAndUpdates(t *testing.T) {
	h := newHarness(t, "y\n")
	require.NoError(t, h.app.Context.Cache.Store())
	h.proj.Write("package.json", `{"name":"shop","dependencies":{"left-pad":"1.3.0"}}`)

	require.NoError(t, h.run("up"))
	assert.Contains(t, h.out.String(), "Dependencies changed")
	assert.Equal(t, []string{
		"docker compose -p shop run --rm frontend npm install",
		"docker compose -p shop run --rm app pip install -r requirements.txt",
		"docker compose -p shop up -d",
	}, h.composeLines())
}

func TestFailedPrerequisiteStopsCommand(t *testing.T) {
	h := newHarness(t, "")
	h.fx.Codes["docker info"] = 1
	err := h.run("up")
	assert.True(t, errors.Is(err, prereq.ErrFailed))
	assert.Equal(t, 1, ExitCode(err))
	assert.Empty(t, h.composeLines())
}

func TestAssumeYesSkipsPrompt(t *testing.T) {
	p := testutil.NewProject(t)
	fx := testutil.NewFakeExec()
	var out bytes.Buffer
	in, w := testutil.Stdio("", &out)
	a := New(Options{
		Env:     config.Env{SSHDir: filepath.Join(p.Root, "ssh"), AssumeYes: true},
		Config:  p.Config,
		Root:    p.Root,
		Exec:    fx,
		Profile: p.Profile,
		Stdio:   prompt.SurveyIO{In: in, Out: w, Err: w},
	})
	assert.Equal(t, "devenv", a.Name)
	require.NoError(t, Execute(context.Background(), a, []string{"rebuild-volumes"}))
	assert.Contains(t, fx.Lines(), "docker compose -p shop down --volumes")
}

func TestReportError(t *testing.T) {
	var buf bytes.Buffer
	ReportError(&buf, "devenv", ErrUsage)
	ReportError(&buf, "devenv", nil)
	assert.Empty(t, buf.String())
	ReportError(&buf, "devenv", &runner.ExitError{Cmd: "docker", Code: 2})
	assert.Equal(t, "devenv: docker exited with code 2\n", buf.String())
	assert.Equal(t, 2, ExitCode(&runner.ExitError{Cmd: "docker", Code: 2}))
}

func TestAnyUnknownNameIsUsageError(t *testing.T) {
	for _, name := range []string{"", "help", "__complete", "completion", "UP", " up", "-v", "1"} {
		h := newHarness(t, "")
		err := h.run(name)
		assert.True(t, errors.Is(err, ErrUsage), "%q", name)
		assert.Equal(t, 1, ExitCode(err), "%q", name)
		assert.Empty(t, h.fx.Lines(), "%q", name)
	}
}

func TestEveryRegisteredNameResolves(t *testing.T) {
	h := newHarness(t, "")
	root := NewRootCommand(h.app)
	for _, name := range h.app.Registry.Names() {
		assert.True(t, h.app.Known(name), name)
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}
