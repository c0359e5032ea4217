package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/josephlewis42/ezh/core/vos"
	getopt "github.com/pborman/getopt/v2"
)

// AllCommands holds a list of all registered commands
var AllCommands = make(map[string]vos.ProcessFunc)

// registered keeps the names each builtin was added with.
var registered []BuiltinCommand

// addCmd registers a builtin under one or more names.
func addCmd(cmd vos.ProcessFunc, names ...string) {
	for _, name := range names {
		if _, ok := AllCommands[name]; ok {
			panic(fmt.Sprintf("builtin %q registered twice", name))
		}
		AllCommands[name] = cmd
	}
	registered = append(registered, BuiltinCommand{Names: names, Proc: cmd})
}

// BuiltinProcessResolver finds a builtin by name, returning nil if there is
// none so the shell runs an external program instead.
func BuiltinProcessResolver(name string) vos.ProcessFunc {
	return AllCommands[name]
}

var _ vos.ProcessResolver = BuiltinProcessResolver

// BuiltinCommand is a builtin with every name it's registered under.
type BuiltinCommand struct {
	Names []string
	Proc  vos.ProcessFunc
}

// ListBuiltinCommands lists the builtins sorted by their first name.
func ListBuiltinCommands() []BuiltinCommand {
	out := make([]BuiltinCommand, len(registered))
	for i, entry := range registered {
		names := append([]string(nil), entry.Names...)
		sort.Strings(names)
		out[i] = BuiltinCommand{Names: names, Proc: entry.Proc}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Names[0] < out[j].Names[0]
	})
	return out
}

type SimpleCommand struct {
	// Use holds a one line usage string
	Use string
	// Short holds a sone line description of the command.
	Short string
	// ShowHelp sets whether help is displayed or not.
	// If this is non-nil when Run() is called, then the default help flag isn't
	// added.
	ShowHelp *bool
	// Interspersed allows flags to follow positional arguments, "--" ends
	// flag parsing.
	Interspersed bool

	flags *getopt.Set
	args  []string
}

// Flags gets the command's flag set.
func (s *SimpleCommand) Flags() *getopt.Set {
	if s.flags == nil {
		s.flags = getopt.New()
	}

	return s.flags
}

// Args returns the positional arguments left after flag parsing.
func (s *SimpleCommand) Args() []string {
	return s.args
}

// PrintHelp writes help for the command to the given writer.
func (s *SimpleCommand) PrintHelp(w io.Writer) {
	fmt.Fprint(w, "usage: ")
	fmt.Fprintln(w, s.Use)
	fmt.Fprintln(w, s.Short)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	s.Flags().PrintOptions(w)
}

func (s *SimpleCommand) parse(argv []string) error {
	opts := s.Flags()
	if !s.Interspersed {
		if err := opts.Getopt(argv, nil); err != nil {
			return err
		}
		s.args = opts.Args()
		return nil
	}

	s.args = nil
	rest := argv
	for {
		if err := opts.Getopt(rest, nil); err != nil {
			return err
		}
		remaining := opts.Args()
		if len(remaining) == 0 {
			return nil
		}

		consumed := len(rest) - 1 - len(remaining)
		if consumed > 0 && rest[consumed] == "--" {
			s.args = append(s.args, remaining...)
			return nil
		}

		s.args = append(s.args, remaining[0])
		rest = append([]string{rest[0]}, remaining[1:]...)
	}
}

// Run the command, if flag parsing was succcessful call the callback.
func (s *SimpleCommand) Run(proc *vos.Process, callback func() int) int {
	opts := s.Flags()

	// Add help flag if not overridden.
	if s.ShowHelp == nil {
		s.ShowHelp = opts.BoolLong("help", 0, "show this help and exit")
	}

	if err := s.parse(proc.Args()); err != nil {
		s.LogProgramError(proc, fmt.Errorf("invalid arguments: %w", err))
		return 1
	}

	if *s.ShowHelp {
		s.PrintHelp(proc.Stdout())
		return 0
	}

	return callback()
}

// RunE is like Run but prints the callback's error and exits 1 if it fails.
func (s *SimpleCommand) RunE(proc *vos.Process, callback func() error) int {
	return s.Run(proc, func() int {
		if err := callback(); err != nil {
			s.LogProgramError(proc, err)
			return 1
		}
		return 0
	})
}

// LogProgramError writes err prefixed with the command name to stderr.
func (s *SimpleCommand) LogProgramError(proc *vos.Process, err error) {
	fmt.Fprintf(proc.Stderr(), "%s: %v\n", proc.Args()[0], err)
}

// ReadInputOrFile reads the named file relative to the working directory,
// or all of stdin if name is empty.
func ReadInputOrFile(proc *vos.Process, name string) ([]byte, error) {
	if name == "" {
		return io.ReadAll(proc.Stdin())
	}
	return proc.ReadFile(name)
}

// splitLines splits text on "\r\n", "\n" and "\r". Text ending in a
// separator has a trailing empty line.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

const (
	colorAlways = "always"
	colorAuto   = "auto"
	colorNever  = "never"
)

var (
	ColorBoldBlue  = color.New(color.FgBlue, color.Bold)
	ColorBoldGreen = color.New(color.FgGreen, color.Bold)
	ColorBoldCyan  = color.New(color.FgCyan, color.Bold)
	ColorBoldRed   = color.New(color.FgRed, color.Bold)
)

type ColorPrinter struct {
	value *string
}

// Init adds the --color flag.
func (c *ColorPrinter) Init(flags *getopt.Set) {
	c.value = flags.EnumLong(
		"color",
		rune(0), // No short flag.
		[]string{colorAlways, colorAuto, colorNever},
		colorAuto,
		"colorize the output (always|auto|never)")
}

// ShouldColor decides on "auto" the same way the color package does for the
// shell's own stdout.
func (c *ColorPrinter) ShouldColor() bool {
	switch {
	case *c.value == colorNever:
		return false
	case *c.value == colorAlways:
		return true
	default:
		return !color.NoColor
	}
}

func (c *ColorPrinter) Sprintf(col *color.Color, format string, a ...interface{}) string {
	if c.ShouldColor() {
		colored := *col
		colored.EnableColor()
		return colored.Sprintf(format, a...)
	}
	return fmt.Sprintf(format, a...)
}
