package commands

import (
	"fmt"
	"os/user"

	"github.com/josephlewis42/ezh/core/vos"
)

// Whoami prints $USER, or the name of the user running ezh if it isn't set.
func Whoami(proc *vos.Process) int {
	cmd := &SimpleCommand{
		Use:   "whoami",
		Short: "Print the current user.",
	}

	return cmd.Run(proc, func() int {
		name, ok, _ := proc.Env().LookupEnv("USER")
		if !ok {
			u, err := user.Current()
			if err != nil {
				fmt.Fprintf(proc.Stderr(), "whoami: %v\n", err)
				return 1
			}
			name = u.Username
		}

		fmt.Fprint(proc.Stdout(), name)
		return 0
	})
}

var _ vos.ProcessFunc = Whoami

func init() {
	addCmd(Whoami, "whoami")
}
