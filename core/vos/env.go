package vos

import (
	"fmt"
	"sort"
	"strings"
)

// ExitStatus tracks whether a session keeps accepting instructions.
type ExitStatus int

const (
	StatusRunning ExitStatus = iota
	StatusExiting
)

func (s ExitStatus) String() string {
	switch s {
	case StatusRunning:
		return "RUNNING"
	case StatusExiting:
		return "EXITING"
	default:
		return fmt.Sprintf("ExitStatus(%d)", int(s))
	}
}

// Environment is the mutable state of a session: variables, the working
// directory and the exit flag.
//
// Once the exit status becomes StatusExiting the environment is frozen and
// every operation except ExitStatus returns ErrExiting.
type Environment struct {
	variables  map[string]string
	workingDir string
	status     ExitStatus
}

// NewEnvironment creates an empty running environment rooted at workingDir.
func NewEnvironment(workingDir string) *Environment {
	return &Environment{
		variables:  make(map[string]string),
		workingDir: workingDir,
	}
}

// NewEnvironmentFromList creates an environment with the variables from a list
// of "key=value" entries.
func NewEnvironmentFromList(workingDir string, environ []string) *Environment {
	out := NewEnvironment(workingDir)
	// A fresh environment is running so CopyEnv can't fail.
	_ = CopyEnv(out, environ)
	return out
}

// CopyEnv copies "key=value" entries into dst. Entries without a separator are
// set to the empty string.
func CopyEnv(dst *Environment, environ []string) error {
	for _, e := range environ {
		split := strings.SplitN(e, "=", 2)
		key, value := split[0], ""
		if len(split) > 1 {
			value = split[1]
		}
		if err := dst.Setenv(key, value); err != nil {
			return err
		}
	}

	return nil
}

// ExitStatus returns the current status, it never fails.
func (e *Environment) ExitStatus() ExitStatus {
	return e.status
}

// SetExitStatus changes the status. Leaving StatusExiting is forbidden.
func (e *Environment) SetExitStatus(status ExitStatus) error {
	if e.status == StatusExiting {
		return fmt.Errorf("resetting %s status: %w", e.status, ErrExiting)
	}
	e.status = status
	return nil
}

// Setenv sets the value of the variable named by key.
func (e *Environment) Setenv(key, value string) error {
	if e.status == StatusExiting {
		return fmt.Errorf("setenv %q: %w", key, ErrExiting)
	}
	e.variables[key] = value
	return nil
}

// Unsetenv removes a single variable.
func (e *Environment) Unsetenv(key string) error {
	if e.status == StatusExiting {
		return fmt.Errorf("unsetenv %q: %w", key, ErrExiting)
	}
	delete(e.variables, key)
	return nil
}

// LookupEnv retrieves the value of the variable named by key and whether it
// was set.
func (e *Environment) LookupEnv(key string) (string, bool, error) {
	if e.status == StatusExiting {
		return "", false, fmt.Errorf("getenv %q: %w", key, ErrExiting)
	}
	val, ok := e.variables[key]
	return val, ok, nil
}

// Getenv retrieves the value of the variable named by key, unset variables
// are the empty string.
func (e *Environment) Getenv(key string) (string, error) {
	val, _, err := e.LookupEnv(key)
	return val, err
}

// Variables returns a snapshot of every variable.
func (e *Environment) Variables() (map[string]string, error) {
	if e.status == StatusExiting {
		return nil, fmt.Errorf("variables: %w", ErrExiting)
	}
	out := make(map[string]string, len(e.variables))
	for k, v := range e.variables {
		out[k] = v
	}
	return out, nil
}

// Environ returns the variables as sorted "key=value" strings.
func (e *Environment) Environ() ([]string, error) {
	vars, err := e.Variables()
	if err != nil {
		return nil, err
	}

	env := make([]string, 0, len(vars))
	for k, v := range vars {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(env)
	return env, nil
}

// WorkingDirectory returns the session's current directory.
func (e *Environment) WorkingDirectory() (string, error) {
	if e.status == StatusExiting {
		return "", fmt.Errorf("getwd: %w", ErrExiting)
	}
	return e.workingDir, nil
}

// Chdir changes the working directory. The path isn't checked, callers are
// expected to validate it against their filesystem.
func (e *Environment) Chdir(dir string) error {
	if e.status == StatusExiting {
		return fmt.Errorf("chdir %q: %w", dir, ErrExiting)
	}
	e.workingDir = dir
	return nil
}

// Clone returns an independent copy of the environment.
func (e *Environment) Clone() *Environment {
	out := &Environment{
		variables:  make(map[string]string, len(e.variables)),
		workingDir: e.workingDir,
		status:     e.status,
	}
	for k, v := range e.variables {
		out.variables[k] = v
	}
	return out
}

// ReplaceWith overwrites the whole state of e with a copy of other.
func (e *Environment) ReplaceWith(other *Environment) error {
	if e.status == StatusExiting {
		return fmt.Errorf("replace: %w", ErrExiting)
	}
	*e = *other.Clone()
	return nil
}
