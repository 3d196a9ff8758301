package testutil

import (
	"context"
	"strings"
	"sync"

	"devenv/cli/devenv/internal/execx"
)

// Call records one invocation seen by a FakeExec.
type Call struct {
	Name string
	Args []string
}

// Line renders the call as a single command line.
func (c Call) Line() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// FakeExec records invocations instead of running them. Codes maps a command
// line prefix to the exit code returned for matching calls; Output does the
// same for Capture stdout. Binaries lists names LookPath resolves.
type FakeExec struct {
	mu       sync.Mutex
	Calls    []Call
	Inputs   []string
	Codes    map[string]int
	Output   map[string]string
	Binaries map[string]bool
}

// NewFakeExec returns a FakeExec where docker and ssh resolve on PATH.
func NewFakeExec() *FakeExec {
	return &FakeExec{
		Codes:    map[string]int{},
		Output:   map[string]string{},
		Binaries: map[string]bool{"docker": true, "ssh": true},
	}
}

func (f *FakeExec) record(name string, args []string) Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := Call{Name: name, Args: append([]string{}, args...)}
	f.Calls = append(f.Calls, c)
	return c
}

func (f *FakeExec) code(line string) int {
	best, code := -1, 0
	for prefix, c := range f.Codes {
		if strings.HasPrefix(line, prefix) && len(prefix) > best {
			best, code = len(prefix), c
		}
	}
	return code
}

func (f *FakeExec) Run(_ context.Context, name string, args ...string) execx.Result {
	c := f.record(name, args)
	return execx.Result{Code: f.code(c.Line())}
}

func (f *FakeExec) RunWithInput(_ context.Context, input []byte, name string, args ...string) execx.Result {
	c := f.record(name, args)
	f.mu.Lock()
	f.Inputs = append(f.Inputs, string(input))
	f.mu.Unlock()
	return execx.Result{Code: f.code(c.Line())}
}

func (f *FakeExec) Capture(_ context.Context, name string, args ...string) (string, execx.Result) {
	c := f.record(name, args)
	line := c.Line()
	out := ""
	for prefix, o := range f.Output {
		if strings.HasPrefix(line, prefix) {
			out = o
		}
	}
	return out, execx.Result{Code: f.code(line)}
}

func (f *FakeExec) LookPath(name string) bool { return f.Binaries[name] }

// Lines returns every recorded call as a command line, in order.
func (f *FakeExec) Lines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		out = append(out, c.Line())
	}
	return out
}
