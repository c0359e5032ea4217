package shell

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/josephlewis42/ezh/core/logger"
	"github.com/josephlewis42/ezh/core/vos"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// transcript interleaves stdout and stderr the way a terminal shows them.
type transcript struct {
	bytes.Buffer
	failWrites bool
}

func (tr *transcript) WriteOutput(p []byte) error {
	if tr.failWrites && len(p) > 0 {
		return &AdapterError{Op: "write", Err: errors.New("broken pipe")}
	}
	tr.Write(p)
	return nil
}

func (tr *transcript) WriteError(p []byte) error {
	return tr.WriteOutput(p)
}

func newTestSession(lines ...string) (*Session, *transcript) {
	input := StringInput(lines)
	out := &transcript{}
	return &Session{
		Env:        vos.NewEnvironment("/"),
		Input:      &input,
		Output:     out,
		Dispatcher: &Dispatcher{Resolver: (&fakeBuiltins{}).resolve},
	}, out
}

func TestSession_Run(t *testing.T) {
	session, out := newTestSession(
		"say hello | count",
		`x="a b"`,
		`say $x"c"`,
		`say "$x"`,
		"",
		"a = b",
		`echo "oh no'`,
		"| say",
		"complain oops",
		"quit 4 | say x",
		"quit 5",
		"say unreachable",
	)

	assert.Equal(t, 5, session.Run())
	assert.Equal(t, vos.StatusExiting, session.Env.ExitStatus())

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"))
	g.Assert(t, "session_transcript", out.Bytes())
}

func TestSession_Run_inputClosed(t *testing.T) {
	session, out := newTestSession("say hi")

	assert.Equal(t, ExitCodeAdapterFailure, session.Run())
	assert.Equal(t, "hi\n", out.String())
}

func TestSession_Run_outputFailure(t *testing.T) {
	session, out := newTestSession("say hi", "say again")
	out.failWrites = true

	assert.Equal(t, ExitCodeAdapterFailure, session.Run())
}

func TestSession_Run_exitCode(t *testing.T) {
	for line, want := range map[string]int{
		"quit 0":              0,
		"quit 42":             42,
		"complain x | quit 9": 0,
	} {
		t.Run(line, func(t *testing.T) {
			session, _ := newTestSession(line, "quit 0")
			assert.Equal(t, want, session.Run())
		})
	}
}

func TestSession_RunInstruction(t *testing.T) {
	session, out := newTestSession()

	result, err := session.RunInstruction("say hi")
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)

	result, err = session.RunInstruction("a = b")
	require.NoError(t, err)
	assert.Nil(t, result, "diagnostics have no result")

	assert.Equal(t, "hi\nlexing error: space near assign is forbidden, at position: unknown\n", out.String())

	out.failWrites = true
	_, err = session.RunInstruction("say hi")
	assert.Error(t, err)
}

func TestSession_RunInstruction_failureKeepsStderr(t *testing.T) {
	session, out := newTestSession()
	session.Env = vos.NewEnvironment(t.TempDir())

	result, err := session.RunInstruction("complain boom | ezh-test-no-such-program")

	require.NoError(t, err)
	assert.Nil(t, result)
	assert.True(t, strings.HasPrefix(out.String(), "boom\nexecution error: ezh-test-no-such-program: could not start process"), out.String())
}

func TestSession_Eval(t *testing.T) {
	session, _ := newTestSession()

	result, err := session.Eval("x=5")
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)

	result, err = session.Eval("say $x | count")
	require.NoError(t, err)
	assert.Equal(t, "1", string(result.Stdout))

	_, err = session.Eval("x=")
	assert.ErrorIs(t, err, &ParseError{Kind: EmptyRHS})
}

func TestSession_events(t *testing.T) {
	var log bytes.Buffer
	session, _ := newTestSession("say hi | count", "a=", "quit 3")
	session.Logger = logger.NewJSONLinesLogRecorder(&log).NewSession("test-session")

	assert.Equal(t, 3, session.Run())

	var events []string
	err := logger.ReadJSONLinesLog(&log, func(le *logger.LogEntry) {
		fields := le.GetFields()
		assert.Equal(t, "test-session", fields[logger.FieldSessionID].GetStringValue())

		event := fields[logger.FieldType].GetStringValue()
		switch event {
		case logger.TypeInstruction:
			event += ":" + fields["text"].GetStringValue()
		case logger.TypeInstructionError:
			event += ":" + fields["stage"].GetStringValue()
		}
		events = append(events, event)
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"session_start",
		"instruction:say hi | count",
		"instruction_error:parsing",
		"instruction:quit 3",
		"session_end",
	}, events)
}

func TestTerminate(t *testing.T) {
	assert.Equal(t, "", string(terminate(nil)))
	assert.Equal(t, "a\n", string(terminate([]byte("a"))))
	assert.Equal(t, "a\n", string(terminate([]byte("a\n"))))
}

func TestErrorPrefix(t *testing.T) {
	cases := map[string]error{
		"lexing error":    &LexError{Kind: UnterminatedQuotes},
		"parsing error":   &ParseError{Kind: EmptyPipe},
		"execution error": &ExecError{Kind: StreamFailure},
		"internal error":  errors.New("other"),
	}
	for want, err := range cases {
		assert.Equal(t, want, errorPrefix(err))
	}
}

func TestScannerInput(t *testing.T) {
	in := NewScannerInput(strings.NewReader("echo a\necho 'multi\nline' done\n\"x\"\n"))

	var got []string
	for {
		line, err := in.ReadInstruction()
		if err != nil {
			assert.ErrorIs(t, err, ErrInputClosed)
			break
		}
		got = append(got, line)
	}

	assert.Equal(t, []string{"echo a", "echo 'multi\nline' done", `"x"`}, got)
}

func TestScannerInput_longLine(t *testing.T) {
	long := strings.Repeat("a", 70000)
	in := NewScannerInput(strings.NewReader("say " + long + "\nsay next\n"))
	out := &transcript{}
	session := &Session{
		Env:        vos.NewEnvironment("/"),
		Input:      in,
		Output:     out,
		Dispatcher: &Dispatcher{Resolver: (&fakeBuiltins{}).resolve},
	}

	assert.Equal(t, ExitCodeAdapterFailure, session.Run())
	assert.Equal(t, long+"\nnext\n", out.String())
}

func TestScannerInput_unterminated(t *testing.T) {
	in := NewScannerInput(strings.NewReader(`echo "never closed`))
	_, err := in.ReadInstruction()
	assert.ErrorIs(t, err, ErrInputClosed)
}

func TestOpenQuotes(t *testing.T) {
	cases := map[string]bool{
		"":             false,
		"echo":         false,
		"'":            true,
		`"'"`:          false,
		`'"'`:          false,
		`"a" 'b`:       true,
		"'a'\"b\"'":    true,
		"say \"x\ny\"": false,
	}
	for input, want := range cases {
		assert.Equal(t, want, openQuotes(input), "openQuotes(%q)", input)
	}
}

func TestConsoleOutput(t *testing.T) {
	var stdout, stderr bytes.Buffer
	out := &ConsoleOutput{Stdout: &stdout, Stderr: &stderr}

	assert.NoError(t, out.WriteOutput([]byte("result\n")))
	assert.NoError(t, out.WriteError([]byte("problem\n")))
	assert.NoError(t, out.WriteOutput(nil))

	assert.Equal(t, "result\n", stdout.String())
	assert.Equal(t, "problem\n", stderr.String())
}

func TestExpandPrompt(t *testing.T) {
	env := vos.NewEnvironmentFromList("/home/ada/src", []string{
		"USER=ada",
		"HOSTNAME=box",
		"HOME=/home/ada",
	})
	assert.Equal(t, "ada@box:~/src$ ", ExpandPrompt("", env))
	assert.Equal(t, "[box] ", ExpandPrompt(`[\h] `, env))

	root := vos.NewEnvironmentFromList("/etc", []string{"USER=root", "HOME=/root"})
	assert.Equal(t, "/etc# ", ExpandPrompt(`\w\$ `, root))
}
