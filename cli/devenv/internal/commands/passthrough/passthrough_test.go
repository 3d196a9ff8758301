package passthrough

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devenv/cli/devenv/internal/prereq"
	"devenv/cli/devenv/internal/testutil/cmdtest"
)

func run(t *testing.T, e *cmdtest.Env, name string, args ...string) error {
	t.Helper()
	h, ok := Lookup(name)
	require.True(t, ok, name)
	return h(context.Background(), e.Ctx.WithArgs(args))
}

func TestRunAndExec(t *testing.T) {
	e := cmdtest.New(t, "")
	require.NoError(t, run(t, e, "run", "pytest", "-k", "slow"))
	require.NoError(t, run(t, e, "exec", "bash"))
	assert.Equal(t, []string{
		"docker compose -p shop run --rm app pytest -k slow",
		"docker compose -p shop exec app bash",
	}, e.Exec.Lines())
}

func TestMissingArgs(t *testing.T) {
	e := cmdtest.New(t, "")
	for _, name := range []string{"run", "exec", "tunnel"} {
		assert.True(t, errors.Is(run(t, e, name), ErrMissingArgs), name)
	}
	assert.Empty(t, e.Exec.Lines())
}

func TestTunnelUsesConfiguredForwards(t *testing.T) {
	e := cmdtest.New(t, "")
	key := filepath.Join(e.Project.Root, "ssh", "id_rsa")

	require.NoError(t, run(t, e, "tunnel", "bastion.example.com"))
	require.NoError(t, run(t, e, "tunnel", "bastion.example.com", "8080:localhost:80"))
	assert.Equal(t, []string{
		"ssh -N -o ExitOnForwardFailure=yes -i " + key + " -L 5432:localhost:5432 dev@bastion.example.com",
		"ssh -N -o ExitOnForwardFailure=yes -i " + key + " -L 8080:localhost:80 dev@bastion.example.com",
	}, e.Exec.Lines())
}

func TestTunnelGatedOnSSHChecks(t *testing.T) {
	e := cmdtest.New(t, "")
	delete(e.Project.Env, "DEVENV_USER")
	err := run(t, e, "tunnel", "bastion.example.com")
	assert.True(t, errors.Is(err, prereq.ErrFailed))
	assert.Empty(t, e.Exec.Lines())
}

func TestLookupUnknown(t *testing.T) {
	_, ok := Lookup("up")
	assert.False(t, ok)
	assert.Len(t, Commands(), 3)
}
