package vos

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ExampleCopyEnv() {
	env := NewEnvironment("/")
	CopyEnv(env, []string{"A=B", "C=D", "E", "F=G=H"})

	environ, _ := env.Environ()
	fmt.Printf("Environ(): %q\n", environ)
	f, _ := env.Getenv("F")
	fmt.Printf("Getenv(\"F\"): %q\n", f)

	// Output: Environ(): ["A=B" "C=D" "E=" "F=G=H"]
	// Getenv("F"): "G=H"
}

func ExampleNewEnvironmentFromList() {
	env := NewEnvironmentFromList("/tmp", []string{"A=B", "C=D"})

	environ, _ := env.Environ()
	wd, _ := env.WorkingDirectory()
	fmt.Printf("Environ(): %q\n", environ)
	fmt.Printf("WorkingDirectory(): %q\n", wd)

	// Output: Environ(): ["A=B" "C=D"]
	// WorkingDirectory(): "/tmp"
}

func ExampleEnvironment_Unsetenv() {
	env := NewEnvironment("/")
	env.Setenv("A", "B")
	env.Setenv("C", "D")

	before, _ := env.Environ()
	fmt.Println("Before:", before)
	env.Unsetenv("A")
	after, _ := env.Environ()
	fmt.Println("After:", after)

	// Output: Before: [A=B C=D]
	// After: [C=D]
}

func ExampleEnvironment_LookupEnv() {
	env := NewEnvironment("/")
	env.Setenv("A", "B")

	val, ok, _ := env.LookupEnv("A")
	fmt.Println("Existing", "val:", val, "ok:", ok)
	val, ok, _ = env.LookupEnv("B")
	fmt.Println("Missing", "val:", val, "ok:", ok)

	// Output: Existing val: B ok: true
	// Missing val:  ok: false
}

func TestEnvironment_getMissing(t *testing.T) {
	env := NewEnvironment("/")

	val, err := env.Getenv("missing")
	assert.NoError(t, err)
	assert.Equal(t, "", val)
}

func TestEnvironment_exiting(t *testing.T) {
	env := NewEnvironment("/")
	require.NoError(t, env.Setenv("A", "B"))
	require.NoError(t, env.SetExitStatus(StatusExiting))

	assert.Equal(t, StatusExiting, env.ExitStatus())

	_, err := env.Getenv("A")
	assert.ErrorIs(t, err, ErrExiting)
	assert.ErrorIs(t, env.Setenv("A", "C"), ErrExiting)
	assert.ErrorIs(t, env.Unsetenv("A"), ErrExiting)
	_, err = env.Variables()
	assert.ErrorIs(t, err, ErrExiting)
	_, err = env.WorkingDirectory()
	assert.ErrorIs(t, err, ErrExiting)
	assert.ErrorIs(t, env.Chdir("/tmp"), ErrExiting)
	assert.ErrorIs(t, env.ReplaceWith(NewEnvironment("/")), ErrExiting)

	// The status is one-way, even re-setting EXITING is refused.
	assert.ErrorIs(t, env.SetExitStatus(StatusRunning), ErrExiting)
	assert.ErrorIs(t, env.SetExitStatus(StatusExiting), ErrExiting)
	assert.Equal(t, StatusExiting, env.ExitStatus())
}

func TestEnvironment_Clone(t *testing.T) {
	env := NewEnvironment("/home")
	require.NoError(t, env.Setenv("A", "B"))

	clone := env.Clone()
	require.NoError(t, clone.Setenv("A", "changed"))
	require.NoError(t, clone.Setenv("C", "D"))
	require.NoError(t, clone.Chdir("/tmp"))
	require.NoError(t, clone.SetExitStatus(StatusExiting))

	vars, err := env.Variables()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "B"}, vars)
	wd, err := env.WorkingDirectory()
	require.NoError(t, err)
	assert.Equal(t, "/home", wd)
	assert.Equal(t, StatusRunning, env.ExitStatus())
}

func TestEnvironment_ReplaceWith(t *testing.T) {
	global := NewEnvironment("/")
	require.NoError(t, global.Setenv("old", "value"))

	local := global.Clone()
	require.NoError(t, local.Unsetenv("old"))
	require.NoError(t, local.Setenv("new", "value"))
	require.NoError(t, local.Chdir("/tmp"))
	require.NoError(t, local.SetExitStatus(StatusExiting))

	require.NoError(t, global.ReplaceWith(local))

	assert.Equal(t, StatusExiting, global.ExitStatus())

	// Later changes to local don't leak through.
	fresh := NewEnvironment("/other")
	assert.ErrorIs(t, global.ReplaceWith(fresh), ErrExiting)
	assert.Equal(t, "EXITING", global.ExitStatus().String())
}

func TestEnvironment_ReplaceWithIsACopy(t *testing.T) {
	global := NewEnvironment("/")
	local := NewEnvironment("/tmp")
	require.NoError(t, local.Setenv("A", "B"))

	require.NoError(t, global.ReplaceWith(local))
	require.NoError(t, local.Setenv("A", "changed"))

	val, err := global.Getenv("A")
	require.NoError(t, err)
	assert.Equal(t, "B", val)
	wd, err := global.WorkingDirectory()
	require.NoError(t, err)
	assert.Equal(t, "/tmp", wd)
}
