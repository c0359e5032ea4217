package shell

import (
	"errors"
	"fmt"
)

// LexErrorKind enumerates lexing failures.
type LexErrorKind int

const (
	UnterminatedQuotes LexErrorKind = iota
	EmptySubstitution
	SpaceNearAssign
)

func (k LexErrorKind) String() string {
	switch k {
	case UnterminatedQuotes:
		return "unterminated quotes"
	case EmptySubstitution:
		return "empty substitution is forbidden: no variable name"
	case SpaceNearAssign:
		return "space near assign is forbidden"
	default:
		return fmt.Sprintf("LexErrorKind(%d)", int(k))
	}
}

// LexError is returned by Lex and Postprocess.
type LexError struct {
	Kind LexErrorKind
	// Position is the 1-based character offset of the failure, 0 if unknown.
	Position int
}

func (e *LexError) Error() string {
	pos := "unknown"
	if e.Position > 0 {
		pos = fmt.Sprint(e.Position)
	}
	return fmt.Sprintf("%s, at position: %s", e.Kind, pos)
}

// Is matches any *LexError of the same kind.
func (e *LexError) Is(target error) bool {
	t, ok := target.(*LexError)
	return ok && t.Kind == e.Kind
}

// ParseErrorKind enumerates grammar failures.
type ParseErrorKind int

const (
	EmptyLHS ParseErrorKind = iota
	EmptyRHS
	NotPipedOperations
	EmptyPipe
)

func (k ParseErrorKind) String() string {
	switch k {
	case EmptyLHS:
		return "empty LHS of assignment"
	case EmptyRHS:
		return "empty RHS of assignment"
	case NotPipedOperations:
		return "sequential operations without pipe"
	case EmptyPipe:
		return "pipe without an operation on one side"
	default:
		return fmt.Sprintf("ParseErrorKind(%d)", int(k))
	}
}

// ParseError is returned by Parse.
type ParseError struct {
	Kind ParseErrorKind
	// LastToken is the last successfully consumed token, nil if none was.
	LastToken *Token
}

func (e *ParseError) Error() string {
	last := "none"
	if e.LastToken != nil {
		last = e.LastToken.String()
	}
	return fmt.Sprintf("%s, last valid token: %s", e.Kind, last)
}

// Is matches any *ParseError of the same kind.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Kind == e.Kind
}

// ExecErrorKind enumerates pipeline failures that abort execution.
type ExecErrorKind int

const (
	CommandStartupFailure ExecErrorKind = iota
	StreamFailure
)

func (k ExecErrorKind) String() string {
	switch k {
	case CommandStartupFailure:
		return "command startup failure"
	case StreamFailure:
		return "stream failure"
	default:
		return fmt.Sprintf("ExecErrorKind(%d)", int(k))
	}
}

// ExecError is returned by Execute when a stage fails in a way its exit code
// can't express.
type ExecError struct {
	Kind   ExecErrorKind
	Detail string
	Err    error
	// Stderr holds what the stages before the failure wrote to stderr.
	Stderr []byte
}

func (e *ExecError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Detail, e.Err)
	}
	return e.Detail
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// Is matches any *ExecError of the same kind.
func (e *ExecError) Is(target error) bool {
	t, ok := target.(*ExecError)
	return ok && t.Kind == e.Kind
}

// ErrInputClosed is wrapped by an AdapterError when the input source is
// exhausted.
var ErrInputClosed = errors.New("input closed")

// AdapterError is a failure of the terminal input or output.
type AdapterError struct {
	Op  string
	Err error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}

// errorPrefix is the diagnostic prefix a session shows for err.
func errorPrefix(err error) string {
	return errorStage(err) + " error"
}
