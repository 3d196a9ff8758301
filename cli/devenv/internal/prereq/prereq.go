// Package prereq evaluates host-environment checks before state-changing
// actions run. Every check is a predicate over the current environment; the
// checker prints a glyph per outcome and aggregates the results with AND.
package prereq

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
)

// ErrFailed is returned (wrapped with the failing labels) when any check fails.
var ErrFailed = errors.New("prerequisite checks failed")

// Check is a single named predicate.
type Check struct {
	Label          string
	Predicate      func(ctx context.Context) bool
	FailureMessage string
}

// Mode selects how much the checker prints.
type Mode int

const (
	// Silent prints failures only.
	Silent Mode = iota
	// Verbose prints every outcome.
	Verbose
)

type Result struct {
	Label   string
	OK      bool
	Message string
}

type Report struct {
	Results []Result
}

// OK is the logical AND of all results. An empty report passes.
func (r Report) OK() bool {
	for _, res := range r.Results {
		if !res.OK {
			return false
		}
	}
	return true
}

// Failed returns the labels of failed checks in evaluation order.
func (r Report) Failed() []string {
	var out []string
	for _, res := range r.Results {
		if !res.OK {
			out = append(out, res.Label)
		}
	}
	return out
}

// Err returns nil when every check passed.
func (r Report) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrFailed, strings.Join(failed, ", "))
}

// Checker runs check lists and writes the outcome to Out.
type Checker struct {
	Out io.Writer
}

var (
	passGlyph = color.New(color.FgGreen).SprintFunc()
	failGlyph = color.New(color.FgRed).SprintFunc()
)

// Run evaluates every check in order. Failing checks do not stop the run so
// the report lists every unmet condition at once.
func (c *Checker) Run(ctx context.Context, checks []Check, mode Mode) Report {
	out := c.Out
	if out == nil {
		out = os.Stdout
	}
	rep := Report{Results: make([]Result, 0, len(checks))}
	for _, chk := range checks {
		ok := chk.Predicate(ctx)
		res := Result{Label: chk.Label, OK: ok}
		if !ok {
			res.Message = chk.FailureMessage
		}
		rep.Results = append(rep.Results, res)
		switch {
		case ok && mode == Verbose:
			fmt.Fprintf(out, "%s %s\n", passGlyph("✔"), chk.Label)
		case !ok:
			fmt.Fprintf(out, "%s %s: %s\n", failGlyph("✘"), chk.Label, chk.FailureMessage)
		}
	}
	log.WithFields(log.Fields{"checks": len(checks), "failed": len(rep.Failed())}).Debug("prerequisites evaluated")
	return rep
}

// Gate runs checks and returns the report error. Callers use it in front of
// every state-changing step.
func (c *Checker) Gate(ctx context.Context, checks []Check, mode Mode) error {
	return c.Run(ctx, checks, mode).Err()
}
