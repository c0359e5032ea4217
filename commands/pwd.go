package commands

import (
	"errors"
	"fmt"

	"github.com/josephlewis42/ezh/core/vos"
)

// Pwd prints the working directory.
func Pwd(proc *vos.Process) int {
	cmd := &SimpleCommand{
		Use:   "pwd",
		Short: "Print the name of the current working directory.",
	}

	return cmd.Run(proc, func() int {
		if len(cmd.Args()) > 0 {
			cmd.LogProgramError(proc, errors.New("expected zero arguments"))
			return 1
		}

		fmt.Fprint(proc.Stdout(), proc.Getwd())
		return 0
	})
}

var _ vos.ProcessFunc = Pwd

func init() {
	addCmd(Pwd, "pwd")
}
