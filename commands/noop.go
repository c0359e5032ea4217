package commands

import (
	"fmt"

	"github.com/josephlewis42/ezh/core/vos"
)

// NoOpCommand describes a builtin that ignores its arguments.
type NoOpCommand struct {
	Names    []string
	Use      string
	Short    string
	Stdout   string
	ExitCode int
}

// ToCommand converts the no-op command description to a functioning command.
func (c *NoOpCommand) ToCommand() vos.ProcessFunc {
	return func(proc *vos.Process) int {
		if c.Stdout != "" {
			fmt.Fprint(proc.Stdout(), c.Stdout)
		}
		return c.ExitCode
	}
}

var noOpCommands = []NoOpCommand{
	{
		Names: []string{"true", ":"},
		Use:   "true",
		Short: "Do nothing, successfully.",
	},
	{
		Names:    []string{"false"},
		Use:      "false",
		Short:    "Do nothing, unsuccessfully.",
		ExitCode: 1,
	},
}

func init() {
	for i := range noOpCommands {
		cmd := noOpCommands[i]
		addCmd(cmd.ToCommand(), cmd.Names...)
	}
}
