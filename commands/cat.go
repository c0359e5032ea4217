package commands

import (
	"errors"

	"github.com/josephlewis42/ezh/core/vos"
)

// Cat prints a file, or stdin if no file is given.
func Cat(proc *vos.Process) int {
	cmd := &SimpleCommand{
		Use:   "cat [FILE]",
		Short: "Print FILE, or standard input, to standard output.",
	}

	return cmd.Run(proc, func() int {
		args := cmd.Args()
		if len(args) > 1 {
			cmd.LogProgramError(proc, errors.New("expected one or zero arguments"))
			return 1
		}

		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		content, err := ReadInputOrFile(proc, name)
		if err != nil {
			cmd.LogProgramError(proc, err)
			return 2
		}

		proc.Stdout().Write(content)
		return 0
	})
}

var _ vos.ProcessFunc = Cat

func init() {
	addCmd(Cat, "cat")
}
