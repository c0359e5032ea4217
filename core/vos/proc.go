package vos

import (
	"io"
	"path/filepath"

	"github.com/spf13/afero"
)

// ProcessFunc is the body of a command, it returns the exit code.
//
// Commands report file and argument problems through their exit code and
// stderr. Stream failures are tracked by the Process itself and external
// startup failures are reported with Process.Fail.
type ProcessFunc func(proc *Process) int

// ProcessResolver looks up the command for a name, returning nil if there's
// no such command.
type ProcessResolver func(name string) ProcessFunc

// Process is the view a running command has of the session.
type Process struct {
	args []string
	env  *Environment
	fs   afero.Fs

	stdin  *trackedReader
	stdout *trackedWriter
	stderr *trackedWriter

	failure error
}

// NewProcess creates a process. args[0] is the command name.
func NewProcess(args []string, env *Environment, fs afero.Fs, files VIO) *Process {
	if files == nil {
		files = NewNullIO()
	}
	return &Process{
		args:   args,
		env:    env,
		fs:     fs,
		stdin:  &trackedReader{r: files.Stdin()},
		stdout: &trackedWriter{w: files.Stdout()},
		stderr: &trackedWriter{w: files.Stderr()},
	}
}

// Run executes fn as this process and returns its exit code along with any
// hard failure that occurred.
func (p *Process) Run(fn ProcessFunc) (int, error) {
	code := fn(p)
	return code, p.Err()
}

// Args returns the command line, including the command name.
func (p *Process) Args() []string {
	return p.args
}

// Env returns the environment the process runs in.
func (p *Process) Env() *Environment {
	return p.env
}

// Fs returns the filesystem visible to the process.
func (p *Process) Fs() afero.Fs {
	return p.fs
}

func (p *Process) Stdin() io.Reader {
	return p.stdin
}

func (p *Process) Stdout() io.Writer {
	return p.stdout
}

func (p *Process) Stderr() io.Writer {
	return p.stderr
}

// Fail records a failure that must abort the pipeline. Only the first
// failure is kept.
func (p *Process) Fail(err error) {
	if p.failure == nil {
		p.failure = err
	}
}

// Err returns the first hard failure of the process: an explicit Fail or an
// error on one of its streams.
func (p *Process) Err() error {
	switch {
	case p.failure != nil:
		return p.failure
	case p.stdin.err != nil:
		return &StreamError{Stream: "stdin", Err: p.stdin.err}
	case p.stdout.err != nil:
		return &StreamError{Stream: "stdout", Err: p.stdout.err}
	case p.stderr.err != nil:
		return &StreamError{Stream: "stderr", Err: p.stderr.err}
	}
	return nil
}

// Getwd returns the working directory, or "/" if the environment is frozen.
func (p *Process) Getwd() string {
	wd, err := p.env.WorkingDirectory()
	if err != nil || wd == "" {
		return "/"
	}
	return wd
}

// Abs resolves name against the working directory.
func (p *Process) Abs(name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(p.Getwd(), name)
}

// ReadFile reads a file relative to the working directory.
func (p *Process) ReadFile(name string) ([]byte, error) {
	return afero.ReadFile(p.fs, p.Abs(name))
}
