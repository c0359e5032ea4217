package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/josephlewis42/ezh/commands"
	"github.com/josephlewis42/ezh/core/config"
	"github.com/josephlewis42/ezh/core/logger"
	"github.com/josephlewis42/ezh/core/shell"
	"github.com/josephlewis42/ezh/core/ttylog"
	"github.com/josephlewis42/ezh/core/vos"
	"github.com/spf13/cobra"
)

// ExitCodeDiagnostic is the exit code of -c when the instruction couldn't be
// lexed, parsed or executed.
const ExitCodeDiagnostic = 2

var (
	cfgPath     string
	instruction string
	recordPath  string
)

func loadConfig() (*config.Configuration, error) {
	if cfgPath == "" {
		// Built in defaults don't write anywhere.
		cfg := config.Default("")
		cfg.HistoryFile = ""
		cfg.SessionLog = ""
		return cfg, nil
	}

	configuration, err := config.Load(cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		log.Println("Couldn't load config: did you run init?")
	}

	return configuration, err
}

// applyColor sets the color mode for the whole process.
func applyColor(cfg *config.Configuration) {
	switch cfg.Color {
	case config.ColorAlways:
		color.NoColor = false
	case config.ColorNever:
		color.NoColor = true
	}
}

// newSession wires a shell session from the configuration. The returned
// close function flushes the session log.
func newSession(cfg *config.Configuration, in shell.Input, stdout, stderr io.Writer) (*shell.Session, func() error, error) {
	startDir, err := cfg.StartDir()
	if err != nil {
		return nil, nil, err
	}
	aliases, err := cfg.Aliases()
	if err != nil {
		return nil, nil, err
	}

	closeLog := func() error { return nil }
	recorder := logger.NewNopLogger()
	logFd, err := cfg.OpenSessionLog()
	switch {
	case err != nil:
		return nil, nil, err
	case logFd != nil:
		recorder = logger.NewJSONLinesLogRecorder(logFd)
		closeLog = logFd.Close
	}

	var diagnostics *color.Color
	if !color.NoColor {
		diagnostics = shell.DiagnosticColor
	}

	session := &shell.Session{
		Env:   vos.NewEnvironmentFromList(startDir, cfg.Environ()),
		Input: in,
		Output: &shell.ConsoleOutput{
			Stdout:     stdout,
			Stderr:     stderr,
			ErrorColor: diagnostics,
		},
		Dispatcher: &shell.Dispatcher{
			Resolver: commands.BuiltinProcessResolver,
			Aliases:  aliases,
		},
		Executor: &shell.Executor{Fs: cfg.SessionFs()},
		Logger:   recorder.NewSession(uuid.New().String()),
	}
	return session, closeLog, nil
}

func builtinCompleter() *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface
	for _, builtin := range commands.ListBuiltinCommands() {
		for _, name := range builtin.Names {
			items = append(items, readline.PcItem(name))
		}
	}
	return readline.NewPrefixCompleter(items...)
}

func newInput(cfg *config.Configuration, env *vos.Environment) (shell.Input, func() error, error) {
	if !readline.DefaultIsTerminal() {
		return shell.NewScannerInput(os.Stdin), func() error { return nil }, nil
	}

	in, err := shell.NewReadlineInput(&readline.Config{
		HistoryFile:     cfg.HistoryPath(),
		AutoComplete:    builtinCompleter(),
		InterruptPrompt: "^C",
	}, func() string {
		return shell.ExpandPrompt(cfg.Prompt, env)
	})
	if err != nil {
		return nil, nil, err
	}
	return in, in.Close, nil
}

// terminal is what a session reads from and writes to, optionally recorded.
type terminal struct {
	stdout, stderr io.Writer
	recorder       *ttylog.Recorder
}

// openTerminal starts recording to path if it's set. The returned close
// function reports recording failures.
func openTerminal(path string, stdout, stderr io.Writer) (*terminal, func() error, error) {
	if path == "" {
		return &terminal{stdout: stdout, stderr: stderr}, func() error { return nil }, nil
	}

	fd, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}

	recorder := ttylog.NewRecorder(createLogSink(path, fd))
	term := &terminal{
		stdout:   recorder.Writer(ttylog.FDStdout, stdout),
		stderr:   recorder.Writer(ttylog.FDStderr, stderr),
		recorder: recorder,
	}
	closeFn := func() error {
		if err := recorder.Err(); err != nil {
			fd.Close()
			return fmt.Errorf("recording %s: %w", path, err)
		}
		return fd.Close()
	}
	return term, closeFn, nil
}

// recordInstruction records line the way the user typed it after prompt.
func (t *terminal) recordInstruction(prompt, line string) {
	if t.recorder != nil {
		t.recorder.Record(ttylog.FDStdin, []byte(prompt+line+"\n"))
	}
}

// input wraps in so instructions are recorded.
func (t *terminal) input(in shell.Input, prompt func() string) shell.Input {
	if t.recorder == nil {
		return in
	}
	return &recordedInput{Input: in, terminal: t, prompt: prompt}
}

type recordedInput struct {
	shell.Input
	terminal *terminal
	prompt   func() string
}

func (in *recordedInput) ReadInstruction() (string, error) {
	prompt := in.prompt()
	line, err := in.Input.ReadInstruction()
	if err == nil {
		in.terminal.recordInstruction(prompt, line)
	}
	return line, err
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ezh",
	Short: "A small interactive shell",
	Long: `ezh reads instructions, runs them and prints their output.

Instructions are pipelines of builtins or external programs. Variables are
set with NAME=VALUE and substituted with $NAME.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		applyColor(cfg)

		term, closeTerm, err := openTerminal(recordPath, cmd.OutOrStdout(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		var code int
		if cmd.Flags().Changed("command") {
			code, err = runInstruction(cfg, term)
		} else {
			code, err = runInteractive(cfg, term)
		}
		if closeErr := closeTerm(); err == nil {
			err = closeErr
		}
		if err != nil {
			return err
		}
		os.Exit(code)
		return nil
	},
}

// runInstruction runs the -c instruction.
func runInstruction(cfg *config.Configuration, term *terminal) (int, error) {
	session, closeLog, err := newSession(cfg, nil, term.stdout, term.stderr)
	if err != nil {
		return 0, err
	}
	defer closeLog()

	term.recordInstruction("", instruction)

	result, err := session.RunInstruction(instruction)
	switch {
	case err != nil:
		return shell.ExitCodeAdapterFailure, nil
	case result == nil:
		return ExitCodeDiagnostic, nil
	default:
		return result.ExitCode, nil
	}
}

func runInteractive(cfg *config.Configuration, term *terminal) (int, error) {
	session, closeLog, err := newSession(cfg, nil, term.stdout, term.stderr)
	if err != nil {
		return 0, err
	}
	defer closeLog()

	in, closeInput, err := newInput(cfg, session.Env)
	if err != nil {
		return 0, err
	}
	defer closeInput()
	prompt := func() string { return "" }
	if readline.DefaultIsTerminal() {
		prompt = func() string { return shell.ExpandPrompt(cfg.Prompt, session.Env) }
	}
	session.Input = term.input(in, prompt)

	code := session.Run()
	if code == shell.ExitCodeAdapterFailure {
		// Leave the terminal on a fresh line after ^D.
		fmt.Fprintln(term.stderr)
	}
	return code, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config path, built in defaults if empty")
	rootCmd.Flags().StringVarP(&instruction, "command", "c", "", "run a single instruction and exit with its status")
	rootCmd.Flags().StringVar(&recordPath, "record", "", "record the terminal to FILE, asciicast if it ends in .cast")
}
