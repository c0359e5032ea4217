package shell

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/josephlewis42/ezh/core/vos"
	"github.com/spf13/afero"
)

// Result is the outcome of one pipeline.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Executor runs pipelines.
type Executor struct {
	// Fs is the filesystem commands see, the OS filesystem if nil.
	Fs afero.Fs
}

// Execute runs ops one after another, feeding the complete output of each
// stage to the next. Stages run against a copy of global which is written
// back only when ops has a single element, so variables set and exits
// requested inside a multi-stage pipeline don't outlive it.
//
// Stages after one that leaves the environment exiting are skipped. Stderr
// of every stage is collected in order. When a stage fails to start or loses
// a stream, the stderr collected so far is carried by the ExecError.
func (e *Executor) Execute(ops []Operation, global *vos.Environment) (*Result, error) {
	if len(ops) == 0 {
		return &Result{}, nil
	}

	local := global.Clone()

	var (
		stdin  []byte
		stderr bytes.Buffer
		code   int
	)
	for _, op := range ops {
		if local.ExitStatus() == vos.StatusExiting {
			break
		}

		switch op := op.(type) {
		case *Assignment:
			if err := local.Setenv(op.LHS, op.RHS); err != nil {
				return nil, err
			}
			stdin = nil
			code = 0

		case *Command:
			stdout := &bytes.Buffer{}
			files := vos.NewVIOAdapter(bytes.NewReader(stdin), stdout, &stderr)
			proc := vos.NewProcess(op.Argv(), local, e.fs(), files)

			var err error
			code, err = proc.Run(op.Run)
			if err != nil {
				return nil, execError(op.Name, err, stderr.Bytes())
			}
			stdin = stdout.Bytes()

		default:
			panic(fmt.Sprintf("executor: unknown operation %T", op))
		}
	}

	if len(ops) == 1 {
		if err := global.ReplaceWith(local); err != nil {
			return nil, err
		}
	}

	return &Result{
		ExitCode: code,
		Stdout:   stdin,
		Stderr:   stderr.Bytes(),
	}, nil
}

func (e *Executor) fs() afero.Fs {
	if e.Fs == nil {
		return afero.NewOsFs()
	}
	return e.Fs
}

func execError(name string, err error, stderr []byte) error {
	var (
		startErr  *vos.StartupError
		streamErr *vos.StreamError
	)
	switch {
	case errors.As(err, &startErr):
		return &ExecError{
			Kind:   CommandStartupFailure,
			Detail: fmt.Sprintf("%s: could not start process", startErr.Name),
			Err:    startErr.Err,
			Stderr: stderr,
		}
	case errors.As(err, &streamErr):
		return &ExecError{
			Kind:   StreamFailure,
			Detail: fmt.Sprintf("%s: %s stream failure", name, streamErr.Stream),
			Err:    streamErr.Err,
			Stderr: stderr,
		}
	default:
		return fmt.Errorf("%s: %w", name, err)
	}
}
