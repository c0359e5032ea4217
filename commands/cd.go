package commands

import (
	"fmt"

	"github.com/josephlewis42/ezh/core/vos"
	"github.com/spf13/afero"
)

// Cd changes the working directory of the session, to $HOME or / if no
// directory is given.
func Cd(proc *vos.Process) int {
	cmd := &SimpleCommand{
		Use:   "cd [DIR]",
		Short: "Change the working directory.",
	}

	return cmd.Run(proc, func() int {
		args := cmd.Args()

		var target string
		switch len(args) {
		case 0:
			target, _ = proc.Env().Getenv("HOME")
			if target == "" {
				target = "/"
			}
		case 1:
			target = args[0]
		default:
			fmt.Fprintln(proc.Stderr(), "cd: too many arguments")
			return 1
		}

		dir := proc.Abs(target)
		isDir, err := afero.IsDir(proc.Fs(), dir)
		switch {
		case err != nil:
			fmt.Fprintf(proc.Stderr(), "cd: %s: no such file or directory\n", target)
			return 1
		case !isDir:
			fmt.Fprintf(proc.Stderr(), "cd: %s: not a directory\n", target)
			return 2
		}

		if err := proc.Env().Chdir(dir); err != nil {
			proc.Fail(err)
			return 1
		}
		return 0
	})
}

var _ vos.ProcessFunc = Cd

func init() {
	addCmd(Cd, "cd")
}
