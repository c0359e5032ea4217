package shell

import (
	"io"

	"github.com/fatih/color"
)

// ConsoleOutput writes results to a pair of streams.
type ConsoleOutput struct {
	Stdout io.Writer
	Stderr io.Writer
	// ErrorColor highlights diagnostics, nil leaves them plain.
	ErrorColor *color.Color
}

var _ Output = (*ConsoleOutput)(nil)

// DiagnosticColor is the default color of diagnostics.
var DiagnosticColor = color.New(color.FgRed)

func (o *ConsoleOutput) WriteOutput(p []byte) error {
	return write(o.Stdout, p)
}

func (o *ConsoleOutput) WriteError(p []byte) error {
	if o.ErrorColor == nil || len(p) == 0 {
		return write(o.Stderr, p)
	}
	_, err := o.ErrorColor.Fprint(o.Stderr, string(p))
	if err != nil {
		return &AdapterError{Op: "write", Err: err}
	}
	return nil
}

func write(w io.Writer, p []byte) error {
	if len(p) == 0 {
		return nil
	}
	if _, err := w.Write(p); err != nil {
		return &AdapterError{Op: "write", Err: err}
	}
	return nil
}
