package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"devenv/cli/devenv/internal/execx"
)

// Executor runs external binaries. execx.Host is the production implementation.
type Executor interface {
	Run(ctx context.Context, name string, args ...string) execx.Result
	RunWithInput(ctx context.Context, input []byte, name string, args ...string) execx.Result
	Capture(ctx context.Context, name string, args ...string) (string, execx.Result)
	LookPath(name string) bool
}

// ExitError reports a non-zero exit from an external command.
type ExitError struct {
	Cmd  string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Cmd, e.Code)
}

// Runner builds and executes compose and host command lines.
type Runner struct {
	Exec       Executor
	DryRun     bool
	Out        io.Writer
	ComposeCmd []string // e.g. ["docker", "compose"]
	Project    string
	Files      []string
}

func (r *Runner) out() io.Writer {
	if r.Out == nil {
		return os.Stderr
	}
	return r.Out
}

func (r *Runner) base() []string {
	if len(r.ComposeCmd) == 0 {
		return []string{"docker", "compose"}
	}
	return append([]string{}, r.ComposeCmd...)
}

// ComposeArgv returns the full argv for a compose subcommand, including -p and -f flags.
func (r *Runner) ComposeArgv(args ...string) []string {
	all := r.base()
	if strings.TrimSpace(r.Project) != "" {
		all = append(all, "-p", r.Project)
	}
	for _, f := range r.Files {
		all = append(all, "-f", f)
	}
	return append(all, args...)
}

// Compose runs a compose subcommand.
func (r *Runner) Compose(ctx context.Context, args ...string) error {
	argv := r.ComposeArgv(args...)
	return r.Host(ctx, argv[0], argv[1:]...)
}

// ComposeExec runs a command inside the running container of service.
func (r *Runner) ComposeExec(ctx context.Context, service string, args ...string) error {
	return r.Compose(ctx, append([]string{"exec", service}, args...)...)
}

// ComposeRun runs a one-off container of service and removes it afterwards.
func (r *Runner) ComposeRun(ctx context.Context, service string, args ...string) error {
	return r.Compose(ctx, append([]string{"run", "--rm", service}, args...)...)
}

// Host executes a host binary with inherited streams.
func (r *Runner) Host(ctx context.Context, name string, args ...string) error {
	line := strings.Join(append([]string{name}, args...), " ")
	if r.DryRun {
		fmt.Fprintln(r.out(), "+ "+line)
		return nil
	}
	res := r.Exec.Run(ctx, name, args...)
	if res.Code != 0 {
		log.WithFields(log.Fields{"cmd": line, "code": res.Code}).Debug("command failed")
		return &ExitError{Cmd: name, Code: res.Code}
	}
	return nil
}

// HostInput is Host with input fed to the command's stdin.
func (r *Runner) HostInput(ctx context.Context, input []byte, name string, args ...string) error {
	line := strings.Join(append([]string{name}, args...), " ")
	if r.DryRun {
		fmt.Fprintf(r.out(), "+ %s <<< (%d bytes)\n", line, len(input))
		return nil
	}
	res := r.Exec.RunWithInput(ctx, input, name, args...)
	if res.Code != 0 {
		return &ExitError{Cmd: name, Code: res.Code}
	}
	return nil
}

// Succeeds runs a command silently and reports whether it exited 0. Checks run
// even in dry-run mode since they do not change host state.
func (r *Runner) Succeeds(ctx context.Context, name string, args ...string) bool {
	_, res := r.Exec.Capture(ctx, name, args...)
	return res.OK()
}

// ComposeSucceeds is Succeeds for the bare compose tool, without project or file flags.
func (r *Runner) ComposeSucceeds(ctx context.Context, args ...string) bool {
	argv := append(r.base(), args...)
	return r.Succeeds(ctx, argv[0], argv[1:]...)
}
