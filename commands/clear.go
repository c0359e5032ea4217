package commands

import (
	"fmt"

	"github.com/josephlewis42/ezh/core/vos"
)

// Clear implements the UNIX clear command.
func Clear(proc *vos.Process) int {
	// Assumes VT100 compatibility.
	fmt.Fprint(proc.Stdout(), "\033[H\033[2J")
	return 0
}

// Reset implements the UNIX reset command.
func Reset(proc *vos.Process) int {
	fmt.Fprint(proc.Stdout(), "\033c")
	return 0
}

var (
	_ vos.ProcessFunc = Clear
	_ vos.ProcessFunc = Reset
)

func init() {
	addCmd(Clear, "clear")
	addCmd(Reset, "reset")
}
