package vos

import (
	"errors"
	"os"
	"os/exec"
)

// ExitCodeNotStarted is returned by External when the program couldn't be
// launched.
const ExitCodeNotStarted = 127

// External runs Args()[0] as an operating system process. The session
// variables are added on top of the inherited environment, the process starts
// in the session working directory and no timeout is applied.
func External(proc *Process) int {
	args := proc.Args()

	environ, err := proc.Env().Environ()
	if err != nil {
		proc.Fail(err)
		return 1
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Env = append(os.Environ(), environ...)
	cmd.Dir = proc.Getwd()
	cmd.Stdin = proc.Stdin()
	cmd.Stdout = proc.Stdout()
	cmd.Stderr = proc.Stderr()

	if err := cmd.Start(); err != nil {
		proc.Fail(&StartupError{Name: args[0], Err: err})
		return ExitCodeNotStarted
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		proc.Fail(&StreamError{Stream: "pipe", Err: err})
		return 1
	}

	return 0
}

var _ ProcessFunc = External
