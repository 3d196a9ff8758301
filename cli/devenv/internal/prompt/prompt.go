// Package prompt asks the user yes/no questions. Terminals get a survey
// prompt; piped input is read line by line from the shared reader so the
// menu and the prompts consume stdin in order.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrInterrupted is returned when the user aborts a prompt with Ctrl-C.
var ErrInterrupted = errors.New("prompt interrupted")

// Prompter asks for confirmation before destructive steps.
type Prompter interface {
	Confirm(message string, def bool) (bool, error)
}

// New returns a survey prompter when in is a terminal, a line prompter otherwise.
func New(s SurveyIO, lines *bufio.Reader) Prompter {
	if s.IsTerminal() {
		return Survey{IO: s}
	}
	return Line{In: lines, Out: s.Out}
}

// Survey confirms through an interactive terminal prompt.
type Survey struct {
	IO SurveyIO
}

func (s Survey) Confirm(message string, def bool) (bool, error) {
	ok := def
	err := survey.AskOne(&survey.Confirm{Message: message, Default: def}, &ok, s.IO.AskOptions()...)
	if errors.Is(err, terminal.InterruptErr) {
		return false, ErrInterrupted
	}
	return ok, err
}

// Line confirms by reading one line. Empty input or end of input selects def.
type Line struct {
	In  *bufio.Reader
	Out io.Writer
}

func (l Line) Confirm(message string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(l.Out, "%s [%s]: ", message, hint)
	line, err := l.In.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return def, nil
	}
}

// Fixed answers every confirmation with Answer. It backs --yes style flows.
type Fixed struct {
	Answer bool
}

func (f Fixed) Confirm(string, bool) (bool, error) { return f.Answer, nil }
