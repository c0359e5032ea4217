package shell

import (
	"errors"
	"fmt"

	"github.com/josephlewis42/ezh/core/logger"
	"github.com/josephlewis42/ezh/core/vos"
)

// ExitCodeAdapterFailure is returned by Session.Run when the terminal input
// or output fails.
const ExitCodeAdapterFailure = -1

// Input supplies complete instructions, one per call.
type Input interface {
	ReadInstruction() (string, error)
}

// Output displays results and diagnostics.
type Output interface {
	WriteOutput(p []byte) error
	WriteError(p []byte) error
}

// Session is the read-eval-print loop of the shell.
type Session struct {
	// Env is the global environment of the session.
	Env        *vos.Environment
	Input      Input
	Output     Output
	Dispatcher *Dispatcher
	Executor   *Executor
	// Logger records session events, nil disables recording.
	Logger *logger.SessionLogger
}

// Run reads and runs instructions until one of them exits the session or the
// input fails. It returns the exit code of the last instruction, or
// ExitCodeAdapterFailure.
//
// Lexing, parsing and execution errors are shown as diagnostics and don't end
// the session.
func (s *Session) Run() int {
	wd, _ := s.Env.WorkingDirectory()
	s.record(logger.SessionStart{WorkingDir: wd})

	code := s.loop()
	s.record(logger.SessionEnd{ExitCode: code})
	return code
}

func (s *Session) loop() int {
	code := 0
	for s.Env.ExitStatus() == vos.StatusRunning {
		line, err := s.Input.ReadInstruction()
		if err != nil {
			return ExitCodeAdapterFailure
		}

		result, err := s.RunInstruction(line)
		if err != nil {
			return ExitCodeAdapterFailure
		}
		if result != nil {
			code = result.ExitCode
		}
	}
	return code
}

// RunInstruction evaluates line and writes its output, or a diagnostic if it
// couldn't be run. The result is nil when a diagnostic was shown. Errors
// are only returned when writing to Output fails.
func (s *Session) RunInstruction(line string) (*Result, error) {
	result, err := s.Eval(line)
	if err != nil {
		var execErr *ExecError
		if errors.As(err, &execErr) {
			if err := s.Output.WriteError(terminate(execErr.Stderr)); err != nil {
				return nil, err
			}
		}
		msg := fmt.Sprintf("%s: %v", errorPrefix(err), err)
		return nil, s.Output.WriteError(terminate([]byte(msg)))
	}

	if err := s.Output.WriteOutput(terminate(result.Stdout)); err != nil {
		return nil, err
	}
	if err := s.Output.WriteError(terminate(result.Stderr)); err != nil {
		return nil, err
	}
	return result, nil
}

// Eval runs a single instruction against the session environment.
func (s *Session) Eval(line string) (*Result, error) {
	ops, err := s.Compile(line)
	if err != nil {
		s.recordError(line, err)
		return nil, err
	}

	executor := s.Executor
	if executor == nil {
		executor = &Executor{}
	}
	result, err := executor.Execute(ops, s.Env)
	if err != nil {
		s.recordError(line, err)
		return nil, err
	}

	var names []string
	for _, op := range ops {
		if cmd, ok := op.(*Command); ok {
			names = append(names, cmd.Name)
		}
	}
	s.record(logger.Instruction{Text: line, Commands: names, ExitCode: result.ExitCode})
	return result, nil
}

// Compile lexes, substitutes and parses line without running it.
func (s *Session) Compile(line string) ([]Operation, error) {
	tokens, err := Lex(line)
	if err != nil {
		return nil, err
	}
	tokens, err = Postprocess(tokens, s.Env)
	if err != nil {
		return nil, err
	}
	return Parse(tokens, s.Dispatcher)
}

func (s *Session) record(event logger.Event) {
	if s.Logger == nil {
		return
	}
	// Failing to record isn't fatal to the session.
	_ = s.Logger.Record(event)
}

func (s *Session) recordError(line string, err error) {
	s.record(logger.InstructionError{
		Text:    line,
		Stage:   errorStage(err),
		Message: err.Error(),
	})
}

// terminate ends non-empty output with a newline so the next prompt starts
// on its own line.
func terminate(p []byte) []byte {
	if len(p) == 0 || p[len(p)-1] == '\n' {
		return p
	}
	return append(p[:len(p):len(p)], '\n')
}

func errorStage(err error) string {
	var (
		lexErr   *LexError
		parseErr *ParseError
		execErr  *ExecError
	)
	switch {
	case errors.As(err, &lexErr):
		return "lexing"
	case errors.As(err, &parseErr):
		return "parsing"
	case errors.As(err, &execErr):
		return "execution"
	default:
		return "internal"
	}
}
