// Package output writes the tool's non-log output: file headers and
// diagnostics, styled when attached to a terminal.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Emitter writes headers to the output stream and diagnostics to the error
// stream.
type Emitter struct {
	out   io.Writer
	errW  io.Writer
	color bool
}

// NewEmitter builds an emitter over the given streams, enabling color when
// stdout is a terminal.
func NewEmitter(out, errW io.Writer) *Emitter {
	color := false
	if f, ok := out.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Emitter{out: out, errW: errW, color: color}
}

// NewPlainEmitter builds an emitter that never styles output.
func NewPlainEmitter(out, errW io.Writer) *Emitter {
	return &Emitter{out: out, errW: errW}
}

// FileHeader prints the "==> path <==" banner separating per-file output.
func (e *Emitter) FileHeader(path string) {
	header := fmt.Sprintf("==> %s <==", path)
	if e.color {
		header = Styles.FileHeader.Render(header)
	}
	fmt.Fprintf(e.out, "\n%s\n", header)
}

// Errorf prints a diagnostic to the error stream, prefixed with the program
// name so it reads well in pipelines.
func (e *Emitter) Errorf(format string, args ...any) {
	msg := fmt.Sprintf("logfilter: "+format, args...)
	if e.color {
		msg = Styles.Error.Render(msg)
	}
	fmt.Fprintln(e.errW, msg)
}
