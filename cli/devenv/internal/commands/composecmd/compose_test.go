package composecmd

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devenv/cli/devenv/internal/depcache"
	"devenv/cli/devenv/internal/prereq"
	"devenv/cli/devenv/internal/runner"
	"devenv/cli/devenv/internal/testutil/cmdtest"
)

func TestUpFirstRunRecordsHashWithoutPrompt(t *testing.T) {
	e := cmdtest.New(t, "")
	require.NoError(t, e.Run(t, Register, "up"))
	assert.Equal(t, []string{"docker compose -p shop up -d"}, e.Lines())
	assert.NotContains(t, e.Out.String(), "Dependencies changed")

	st, err := e.Ctx.Cache.Check()
	require.NoError(t, err)
	assert.Equal(t, depcache.Fresh, st)
}

func TestUpStaleDeclinedStillStarts(t *testing.T) {
	e := cmdtest.New(t, "n\n")
	require.NoError(t, e.Ctx.Cache.Store())
	e.Project.Write("package.json", `{"name":"shop","version":"2"}`)

	require.NoError(t, e.Run(t, Register, "up", "app"))
	assert.Contains(t, e.Out.String(), "Dependencies changed")
	assert.Equal(t, []string{"docker compose -p shop up -d app"}, e.Lines())
}

func TestUpDeclinedAsksOnlyOncePerChange(t *testing.T) {
	e := cmdtest.New(t, "n\nn\n")
	require.NoError(t, e.Ctx.Cache.Store())
	e.Project.Write("package.json", `{"name":"shop","version":"2"}`)

	require.NoError(t, e.Run(t, Register, "up"))
	require.NoError(t, e.Run(t, Register, "up"))
	assert.Equal(t, 1, strings.Count(e.Out.String(), "Dependencies changed"))
	assert.Equal(t, []string{"docker compose -p shop up -d", "docker compose -p shop up -d"}, e.Lines())

	st, err := e.Ctx.Cache.Peek()
	require.NoError(t, err)
	assert.Equal(t, depcache.Fresh, st)

	e.Project.Write("package.json", `{"name":"shop","version":"3"}`)
	require.NoError(t, e.Run(t, Register, "up"))
	assert.Equal(t, 2, strings.Count(e.Out.String(), "Dependencies changed"))
}

func TestUpStaleAcceptedByDefault(t *testing.T) {
	e := cmdtest.New(t, "\n")
	require.NoError(t, e.Ctx.Cache.Store())
	e.Project.Write("package.json", `{"name":"shop","version":"2"}`)

	require.NoError(t, e.Run(t, Register, "up"))
	assert.Equal(t, []string{
		"docker compose -p shop run --rm frontend npm install",
		"docker compose -p shop run --rm app pip install -r requirements.txt",
		"docker compose -p shop up -d",
	}, e.Lines())
	st, err := e.Ctx.Cache.Check()
	require.NoError(t, err)
	assert.Equal(t, depcache.Fresh, st)
}

func TestUpWithoutManifest(t *testing.T) {
	e := cmdtest.New(t, "")
	e.Project.Remove("package.json")
	require.NoError(t, e.Run(t, Register, "up"))
	assert.Equal(t, []string{"docker compose -p shop up -d"}, e.Lines())
	_, err := os.Stat(e.Ctx.Cache.File)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestUpGatedOnPrerequisites(t *testing.T) {
	e := cmdtest.New(t, "")
	e.Project.Remove("config/local.yaml")
	err := e.Run(t, Register, "up")
	assert.True(t, errors.Is(err, prereq.ErrFailed))
	assert.Empty(t, e.Lines())
	assert.Contains(t, e.Out.String(), "Local config")
}

func TestUpPropagatesComposeFailure(t *testing.T) {
	e := cmdtest.New(t, "")
	e.Exec.Codes["docker compose -p shop up"] = 17
	err := e.Run(t, Register, "up")
	var ee *runner.ExitError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, 17, ee.Code)
}

func TestBuildRunsFullChecksVerbosely(t *testing.T) {
	e := cmdtest.New(t, "")
	require.NoError(t, e.Run(t, Register, "build", "app"))
	assert.Equal(t, []string{"docker compose -p shop build --pull app"}, e.Lines())
	assert.Contains(t, e.Out.String(), "SSH key")
}

func TestRebuildVolumesConfirmation(t *testing.T) {
	e := cmdtest.New(t, "\n")
	require.NoError(t, e.Run(t, Register, "rebuild-volumes"))
	assert.Contains(t, e.Out.String(), "Aborted.")
	assert.Empty(t, e.Lines())

	e = cmdtest.New(t, "yes\n")
	require.NoError(t, e.Run(t, Register, "rebuild-volumes"))
	assert.Equal(t, []string{
		"docker compose -p shop down --volumes",
		"docker compose -p shop up -d",
	}, e.Lines())
}

func TestSimpleComposeCommands(t *testing.T) {
	cases := map[string][]string{
		"down":   {"down", "--remove-orphans"},
		"status": {"ps", "--remove-orphans"},
		"logs":   {"logs", "--remove-orphans"},
	}
	for name, want := range cases {
		e := cmdtest.New(t, "")
		require.NoError(t, e.Run(t, Register, name, "--remove-orphans"))
		assert.Equal(t, []string{"docker compose -p shop " + want[0] + " " + want[1]}, e.Lines(), name)
	}
}

func TestUpDryRunLeavesCacheUntouched(t *testing.T) {
	e := cmdtest.New(t, "")
	e.Ctx.Runner.DryRun = true
	require.NoError(t, e.Run(t, Register, "up"))
	assert.Contains(t, e.Out.String(), "+ docker compose -p shop up -d")
	_, err := os.Stat(e.Ctx.Cache.File)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	e = cmdtest.New(t, "n\n")
	require.NoError(t, e.Ctx.Cache.Store())
	e.Project.Write("package.json", `{"name":"shop","version":"2"}`)
	e.Ctx.Runner.DryRun = true
	require.NoError(t, e.Run(t, Register, "up"))
	st, err := e.Ctx.Cache.Peek()
	require.NoError(t, err)
	assert.Equal(t, depcache.Stale, st)
}

func TestDryRunPrintsCommands(t *testing.T) {
	e := cmdtest.New(t, "")
	e.Ctx.Runner.DryRun = true
	require.NoError(t, e.Run(t, Register, "down"))
	assert.Empty(t, e.Lines())
	assert.Contains(t, e.Out.String(), "+ docker compose -p shop down")
}
