package commands

import (
	"fmt"
	"strconv"

	"github.com/josephlewis42/ezh/core/vos"
)

// Exit ends the session, even when its arguments are invalid. The exit code
// is the optional argument, 0 by default.
//
// Arguments aren't parsed with getopt so negative codes work.
func Exit(proc *vos.Process) int {
	if err := proc.Env().SetExitStatus(vos.StatusExiting); err != nil {
		proc.Fail(err)
		return 1
	}

	args := proc.Args()[1:]
	switch {
	case len(args) > 1:
		fmt.Fprintln(proc.Stderr(), "exit: expected one or zero arguments")
		return 1
	case len(args) == 1:
		code, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintln(proc.Stderr(), "exit: expected integer status code")
			return 2
		}
		return code
	default:
		return 0
	}
}

var _ vos.ProcessFunc = Exit

func init() {
	addCmd(Exit, "exit")
}
