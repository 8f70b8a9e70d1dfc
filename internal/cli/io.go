package cli

import (
	"fmt"
	"io"
)

// IO handles command output and warning reporting.
//
// Warnings go to stderr as they happen and are counted, but they never change
// the exit code: a run that converts every article is a success even when some
// tables had to be passed through untouched.
type IO struct {
	out    io.Writer
	errOut io.Writer
	warned int
}

// NewIO creates a new IO instance.
func NewIO(out, errOut io.Writer) *IO {
	return &IO{out: out, errOut: errOut}
}

// Println writes to stdout.
func (o *IO) Println(a ...any) {
	_, _ = fmt.Fprintln(o.out, a...)
}

// Printf writes formatted output to stdout.
func (o *IO) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(o.out, format, a...)
}

// ErrPrintln writes to stderr.
func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}

// Warnf reports a recoverable problem to stderr.
func (o *IO) Warnf(format string, a ...any) {
	o.warned++
	_, _ = fmt.Fprintf(o.errOut, "warning: "+format+"\n", a...)
}

// Warned returns how many warnings the run produced.
func (o *IO) Warned() int {
	return o.warned
}
