package shell

import (
	"fmt"
	"strings"

	"github.com/josephlewis42/ezh/core/vos"
)

// Operation is one stage of a pipeline: an *Assignment or a *Command.
type Operation interface {
	fmt.Stringer

	isOperation()
}

// Assignment sets a variable.
type Assignment struct {
	LHS string
	RHS string
}

func (*Assignment) isOperation() {}

func (a *Assignment) String() string {
	return fmt.Sprintf("%s=%s", a.LHS, a.RHS)
}

// Command runs a builtin or an external program.
type Command struct {
	Name string
	Args []string
	// Builtin is set when Run came from the dispatch table rather than
	// being an external program.
	Builtin bool
	Run     vos.ProcessFunc
}

func (*Command) isOperation() {}

// Argv is the full command line, including the name.
func (c *Command) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

func (c *Command) String() string {
	kind := "external"
	if c.Builtin {
		kind = "builtin"
	}
	return fmt.Sprintf("%s(%s)", kind, strings.Join(c.Argv(), " "))
}

var (
	_ Operation = (*Assignment)(nil)
	_ Operation = (*Command)(nil)
)

// Dispatcher builds Commands from names.
type Dispatcher struct {
	// Resolver finds builtins, names it returns nil for run externally.
	Resolver vos.ProcessResolver
	// Aliases replace a command name with a list of words.
	Aliases map[string][]string
	// External runs commands that aren't builtins, defaults to vos.External.
	External vos.ProcessFunc
}

// Command creates the command for name. Aliases are expanded once, the
// first word of the expansion isn't looked up as an alias again.
func (d *Dispatcher) Command(name string, args []string) *Command {
	if d == nil {
		d = &Dispatcher{}
	}

	if alias, ok := d.Aliases[name]; ok && len(alias) > 0 {
		args = append(append([]string(nil), alias[1:]...), args...)
		name = alias[0]
	}

	if d.Resolver != nil {
		if fn := d.Resolver(name); fn != nil {
			return &Command{Name: name, Args: args, Builtin: true, Run: fn}
		}
	}

	external := d.External
	if external == nil {
		external = vos.External
	}
	return &Command{Name: name, Args: args, Run: external}
}
