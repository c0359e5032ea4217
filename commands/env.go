package commands

import (
	"fmt"

	"github.com/josephlewis42/ezh/core/vos"
)

// Env prints the session variables, one per line.
func Env(proc *vos.Process) int {
	cmd := &SimpleCommand{
		Use:   "env",
		Short: "Print the shell variables.",
	}

	return cmd.Run(proc, func() int {
		env, err := proc.Env().Environ()
		if err != nil {
			proc.Fail(err)
			return 1
		}
		for i, envDef := range env {
			if i > 0 {
				fmt.Fprintln(proc.Stdout())
			}
			fmt.Fprint(proc.Stdout(), envDef)
		}

		return 0
	})
}

// Unset removes variables from the session.
func Unset(proc *vos.Process) int {
	cmd := &SimpleCommand{
		Use:   "unset [NAME...]",
		Short: "Remove shell variables.",
	}

	return cmd.Run(proc, func() int {
		for _, name := range cmd.Args() {
			if err := proc.Env().Unsetenv(name); err != nil {
				proc.Fail(err)
				return 1
			}
		}
		return 0
	})
}

var (
	_ vos.ProcessFunc = Env
	_ vos.ProcessFunc = Unset
)

func init() {
	addCmd(Env, "env")
	addCmd(Unset, "unset")
}
