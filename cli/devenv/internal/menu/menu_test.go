package menu

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devenv/cli/devenv/internal/cmdregistry"
)

func newMenu(input string) (*Menu, *bytes.Buffer) {
	r := cmdregistry.New()
	noop := func(context.Context, *cmdregistry.Context) error { return nil }
	r.Register(cmdregistry.Command{Name: "init", Description: "Initialize", Handler: noop})
	r.Register(cmdregistry.Command{Name: "up", Description: "Start", Handler: noop})
	r.Register(cmdregistry.Command{Name: "migrate", Description: "Run migrations", Handler: noop})
	var out bytes.Buffer
	return &Menu{Registry: r, In: bufio.NewReader(strings.NewReader(input)), Out: &out}, &out
}

func TestRenderNumbersInRegistryOrder(t *testing.T) {
	m, out := newMenu("")
	m.Render()
	text := out.String()
	assert.Contains(t, text, "1) init")
	assert.Contains(t, text, "2) up")
	assert.Contains(t, text, "3) migrate")
	assert.Less(t, strings.Index(text, "init"), strings.Index(text, "migrate"))
}

func TestSelectByIndexAndName(t *testing.T) {
	m, _ := newMenu("2\n")
	sel, err := m.Select()
	require.NoError(t, err)
	assert.Equal(t, "up", sel.Name)

	m, _ = newMenu("migrate downgrade -1\n")
	sel, err = m.Select()
	require.NoError(t, err)
	assert.Equal(t, Selection{Name: "migrate", Args: []string{"downgrade", "-1"}}, sel)
}

func TestSelectLoopsUntilValid(t *testing.T) {
	m, out := newMenu("9\nbogus\n\n1\n")
	sel, err := m.Select()
	require.NoError(t, err)
	assert.Equal(t, "init", sel.Name)
	assert.Equal(t, 2, strings.Count(out.String(), "Invalid selection"))
}

func TestSelectEndOfInput(t *testing.T) {
	m, _ := newMenu("nope\n")
	_, err := m.Select()
	assert.True(t, errors.Is(err, ErrNoSelection))

	m, _ = newMenu("3")
	sel, err := m.Select()
	require.NoError(t, err, "a final line without newline still counts")
	assert.Equal(t, "migrate", sel.Name)
}
