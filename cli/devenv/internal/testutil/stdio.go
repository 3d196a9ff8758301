package testutil

import (
	"io"
	"strings"

	"github.com/AlecAivazis/survey/v2/terminal"
)

type pipeReader struct{ io.Reader }

func (pipeReader) Fd() uintptr { return ^uintptr(0) }

type pipeWriter struct{ io.Writer }

func (pipeWriter) Fd() uintptr { return ^uintptr(0) }

// Stdio returns non-terminal streams that read input and write to out.
func Stdio(input string, out io.Writer) (terminal.FileReader, terminal.FileWriter) {
	return pipeReader{strings.NewReader(input)}, pipeWriter{out}
}
