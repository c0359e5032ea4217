package commands

import (
	"fmt"
	"os"

	"github.com/josephlewis42/ezh/core/vos"
)

// Hostname prints $HOSTNAME, or the name of the machine if it isn't set.
func Hostname(proc *vos.Process) int {
	cmd := &SimpleCommand{
		Use:   "hostname",
		Short: "Print the system's hostname.",
	}

	return cmd.Run(proc, func() int {
		host, ok, _ := proc.Env().LookupEnv("HOSTNAME")
		if !ok {
			var err error
			if host, err = os.Hostname(); err != nil {
				fmt.Fprintf(proc.Stderr(), "hostname: %v\n", err)
				return 1
			}
		}

		fmt.Fprint(proc.Stdout(), host)
		return 0
	})
}

var _ vos.ProcessFunc = Hostname

func init() {
	addCmd(Hostname, "hostname")
}
