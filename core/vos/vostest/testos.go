// Package vostest runs commands against an in-memory filesystem.
package vostest

import (
	"bytes"
	"io"

	"github.com/josephlewis42/ezh/core/vos"
	"github.com/spf13/afero"
)

// Cmd is similar to exec.Cmd.
type Cmd struct {
	// Process function
	Process vos.ProcessFunc
	// Process arguments, the first argument should be the process name.
	Argv []string

	// Env is the environment the process runs in, it can be modified before
	// calling Run and inspected afterwards.
	Env *vos.Environment
	// Fs is the in-memory filesystem the process sees.
	Fs afero.Fs

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	ExitStatus int
}

// Command creates a command with an empty environment rooted at "/".
func Command(process vos.ProcessFunc, name string, arg ...string) *Cmd {
	return &Cmd{
		Process: process,
		Argv:    append([]string{name}, arg...),
		Env:     vos.NewEnvironment("/"),
		Fs:      afero.NewMemMapFs(),
	}
}

// Output runs the command and returns its stdout and stderr separately.
func (c *Cmd) Output() (stdout, stderr []byte, err error) {
	outBuf := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	c.Stdout = outBuf
	c.Stderr = errBuf

	if err := c.Run(); err != nil {
		return nil, nil, err
	}
	return outBuf.Bytes(), errBuf.Bytes(), nil
}

func (c *Cmd) CombinedOutput() ([]byte, error) {
	// stdout, stderr
	buf := &bytes.Buffer{}
	c.Stdout = buf
	c.Stderr = buf

	err := c.Run()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Run starts the comand and waits for it to complete.
func (c *Cmd) Run() error {
	proc := vos.NewProcess(c.Argv, c.Env, c.Fs, vos.NewVIOAdapter(c.Stdin, c.Stdout, c.Stderr))

	code, err := proc.Run(c.Process)
	c.ExitStatus = code
	return err
}
