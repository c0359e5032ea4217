package commands

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/josephlewis42/ezh/core/vos"
)

// machineNames maps GOARCH to the names uname(1) reports.
var machineNames = map[string]string{
	"amd64": "x86_64",
	"386":   "i686",
	"arm64": "aarch64",
}

// Uname implements the POSIX command by the same name, reporting the machine
// ezh runs on.
func Uname(proc *vos.Process) int {
	cmd := &SimpleCommand{
		Use:   "uname [OPTION...]",
		Short: "Display system information.",
	}

	showAll := cmd.Flags().BoolLong("all", 'a', "print all information")
	showKernelName := cmd.Flags().BoolLong("kernel-name", 's', "print the kernel name")
	showNodename := cmd.Flags().BoolLong("nodename", 'n', "print the network node name")
	showMachine := cmd.Flags().BoolLong("machine", 'm', "print the machine name")

	return cmd.Run(proc, func() int {
		if len(cmd.Args()) > 0 {
			fmt.Fprintf(proc.Stderr(), "uname: extra operand %q\n", cmd.Args()[0])
			return 1
		}

		kernel := runtime.GOOS
		if kernel != "" {
			kernel = strings.ToUpper(kernel[:1]) + kernel[1:]
		}

		node, ok, _ := proc.Env().LookupEnv("HOSTNAME")
		if !ok {
			node, _ = os.Hostname()
		}

		machine, ok := machineNames[runtime.GOARCH]
		if !ok {
			machine = runtime.GOARCH
		}

		var fields []string
		for _, entry := range []struct {
			flag     *bool
			property string
		}{
			{showKernelName, kernel},
			{showNodename, node},
			{showMachine, machine},
		} {
			if *entry.flag || *showAll {
				fields = append(fields, entry.property)
			}
		}

		if len(fields) == 0 {
			fields = append(fields, kernel)
		}

		fmt.Fprint(proc.Stdout(), strings.Join(fields, " "))
		return 0
	})
}

var _ vos.ProcessFunc = Uname

func init() {
	addCmd(Uname, "uname")
}
