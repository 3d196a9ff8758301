package execx

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Result carries the exit code of an external process. Code is 0 on success.
type Result struct {
	Code int
	Err  error
}

// OK reports whether the process exited with status 0.
func (r Result) OK() bool { return r.Code == 0 }

// Host runs binaries on the host, wired to the given streams. The zero value
// inherits the current process streams.
type Host struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (h Host) stdin() io.Reader {
	if h.Stdin == nil {
		return os.Stdin
	}
	return h.Stdin
}

func (h Host) stdout() io.Writer {
	if h.Stdout == nil {
		return os.Stdout
	}
	return h.Stdout
}

func (h Host) stderr() io.Writer {
	if h.Stderr == nil {
		return os.Stderr
	}
	return h.Stderr
}

// Run executes name with args and blocks until it exits.
func (h Host) Run(ctx context.Context, name string, args ...string) Result {
	trace(name, args)
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = h.stdin()
	cmd.Stdout = h.stdout()
	cmd.Stderr = h.stderr()
	return result(ctx, cmd.Run())
}

// RunWithInput runs a command with provided stdin content.
func (h Host) RunWithInput(ctx context.Context, input []byte, name string, args ...string) Result {
	trace(name, args)
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = bytes.NewReader(input)
	cmd.Stdout = h.stdout()
	cmd.Stderr = h.stderr()
	return result(ctx, cmd.Run())
}

// Capture runs a command and returns its stdout. Stderr is discarded.
func (h Host) Capture(ctx context.Context, name string, args ...string) (string, Result) {
	trace(name, args)
	cmd := exec.CommandContext(ctx, name, args...)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	res := result(ctx, cmd.Run())
	return buf.String(), res
}

// LookPath reports whether name resolves to an executable on PATH.
func (Host) LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

func trace(name string, args []string) {
	log.WithField("cmd", strings.Join(append([]string{name}, args...), " ")).Debug("exec")
}

func result(ctx context.Context, err error) Result {
	if err == nil {
		return Result{}
	}
	var ee *exec.ExitError
	switch {
	case errors.As(err, &ee):
		return Result{Code: ee.ExitCode(), Err: err}
	case errors.Is(ctx.Err(), context.Canceled):
		return Result{Code: 130, Err: err}
	case errors.Is(err, exec.ErrNotFound):
		return Result{Code: 127, Err: err}
	default:
		return Result{Code: 1, Err: err}
	}
}
