package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"devenv/cli/devenv/internal/commands/passthrough"
	"devenv/cli/devenv/internal/runner"
)

// NewRootCommand builds the cobra tree from the registry. Arguments reach the
// handlers untouched; flags are not parsed.
func NewRootCommand(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:                a.Name,
		Short:              "Local development environment helper",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableFlagParsing: true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return nil
			}
			a.Usage()
			return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Interactive(cmd.Context())
		},
	}
	root.SetOut(a.Out)
	root.SetErr(a.Out)
	root.SetHelpFunc(func(*cobra.Command, []string) { a.Usage() })

	add := func(name, short string) {
		root.AddCommand(&cobra.Command{
			Use:                name,
			Short:              short,
			DisableFlagParsing: true,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.Dispatch(cmd.Context(), name, args)
			},
		})
	}
	for _, c := range a.Registry.Commands() {
		add(c.Name, c.Description)
	}
	for _, c := range passthrough.Commands() {
		add(c.Name, c.Synopsis)
	}
	return root
}

// HasHelp reports whether argv asks for help anywhere.
func HasHelp(args []string) bool {
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return true
		}
	}
	return false
}

// Known reports whether name is a registered or pass-through command.
func (a *App) Known(name string) bool {
	if _, ok := passthrough.Lookup(name); ok {
		return true
	}
	_, ok := a.Registry.Lookup(name)
	return ok
}

// Execute runs argv through the root command. --help anywhere wins over
// everything else. Names cobra would handle itself (help, __complete) are
// rejected like any other unknown command.
func Execute(ctx context.Context, a *App, args []string) error {
	if HasHelp(args) {
		a.Usage()
		return nil
	}
	if len(args) > 0 && !a.Known(args[0]) {
		a.Usage()
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
	if args == nil {
		// cobra falls back to os.Args on nil.
		args = []string{}
	}
	root := NewRootCommand(a)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// ExitCode converts an error from Execute into a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *runner.ExitError
	if errors.As(err, &ee) && ee.Code > 0 {
		return ee.Code
	}
	return 1
}

// ReportError prints err unless usage was already shown for it.
func ReportError(w io.Writer, name string, err error) {
	if err == nil || errors.Is(err, ErrUsage) {
		return
	}
	fmt.Fprintf(w, "%s: %v\n", name, err)
}
