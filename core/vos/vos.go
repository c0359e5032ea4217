// Package vos holds the state a shell session shares with the commands it runs:
// the variable environment, working directory, exit flag and the standard
// streams of each running command.
package vos

import (
	"errors"
	"fmt"
)

// ErrExiting is returned by Environment operations once the session is
// shutting down.
var ErrExiting = errors.New("environment is exiting")

// StartupError is reported when an external process could not be launched.
type StartupError struct {
	Name string
	Err  error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("%s: could not start process: %v", e.Name, e.Err)
}

func (e *StartupError) Unwrap() error {
	return e.Err
}

// StreamError is reported when reading or writing one of a process's standard
// streams failed.
type StreamError struct {
	// Stream is one of "stdin", "stdout" or "stderr".
	Stream string
	Err    error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("%s stream error: %v", e.Stream, e.Err)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}
