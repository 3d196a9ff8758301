package prompt

import (
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mattn/go-isatty"
)

// SurveyIO is the set of streams prompts read from and write to.
type SurveyIO struct {
	In  terminal.FileReader
	Out terminal.FileWriter
	Err terminal.FileWriter
}

// DefaultSurveyIO is the process's own stdio.
var DefaultSurveyIO = SurveyIO{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}

// IsTerminal reports whether In is attached to a terminal.
func (s SurveyIO) IsTerminal() bool {
	fd := s.In.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// AskOptions binds survey prompts to these streams.
func (s SurveyIO) AskOptions() []survey.AskOpt {
	return []survey.AskOpt{survey.WithStdio(s.In, s.Out, s.Err)}
}
