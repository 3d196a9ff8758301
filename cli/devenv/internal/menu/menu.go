// Package menu renders the registry as a numbered list and reads a selection.
package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"devenv/cli/devenv/internal/cmdregistry"
)

// ErrNoSelection is returned when input ends before a valid selection.
var ErrNoSelection = errors.New("no command selected")

// Selection is a resolved menu choice. Args holds any words typed after the
// command.
type Selection struct {
	Name string
	Args []string
}

// Menu reads selections from In and writes the list and prompts to Out.
type Menu struct {
	Registry *cmdregistry.Registry
	In       *bufio.Reader
	Out      io.Writer
}

var heading = color.New(color.Bold).SprintFunc()

// Render prints every command with its 1-based position.
func (m *Menu) Render() {
	fmt.Fprintln(m.Out, heading("Available commands:"))
	cmds := m.Registry.Commands()
	width := 0
	for _, c := range cmds {
		if len(c.Name) > width {
			width = len(c.Name)
		}
	}
	digits := len(strconv.Itoa(len(cmds)))
	for i, c := range cmds {
		fmt.Fprintf(m.Out, "  %*d) %-*s  %s\n", digits, i+1, width, c.Name, c.Description)
	}
}

// Resolve maps a number or a command name to a registered command name.
func (m *Menu) Resolve(token string) (string, bool) {
	token = strings.TrimSpace(token)
	if n, err := strconv.Atoi(token); err == nil {
		c, ok := m.Registry.At(n)
		return c.Name, ok
	}
	c, ok := m.Registry.Lookup(token)
	return c.Name, ok
}

// Select renders the menu once and then prompts until a valid selection is
// read or input ends.
func (m *Menu) Select() (Selection, error) {
	m.Render()
	for {
		fmt.Fprintf(m.Out, "Select a command [1-%d]: ", m.Registry.Len())
		line, err := m.In.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return Selection{}, err
		}
		fields := strings.Fields(line)
		if len(fields) > 0 {
			if name, ok := m.Resolve(fields[0]); ok {
				return Selection{Name: name, Args: fields[1:]}, nil
			}
			fmt.Fprintf(m.Out, "Invalid selection: %s\n", fields[0])
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(m.Out)
			return Selection{}, ErrNoSelection
		}
	}
}
