package commands

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/josephlewis42/ezh/core/vos"
)

// Rm implements a POSIX rm command.
func Rm(proc *vos.Process) int {
	cmd := &SimpleCommand{
		Use:          "rm [OPTION...] FILE...",
		Short:        "Remove files or directories.",
		Interspersed: true,
	}

	recursive := cmd.Flags().BoolLong("recursive", 'r', "remove directories and their contents recursively")
	force := cmd.Flags().BoolLong("force", 'f', "ignore missing files and arguments, never prompt")

	return cmd.Run(proc, func() int {
		files := cmd.Args()
		if len(files) == 0 && !*force {
			fmt.Fprintln(proc.Stderr(), "rm: missing operand")
			return 1
		}

		anyFailed := false
		for _, file := range files {
			path := proc.Abs(file)
			stat, statErr := proc.Fs().Stat(path)
			switch {
			case errors.Is(statErr, fs.ErrNotExist):
				if !*force {
					fmt.Fprintf(proc.Stderr(), "rm: can't remove %q: no such file or directory\n", file)
					anyFailed = true
				}
			case statErr != nil:
				fmt.Fprintf(proc.Stderr(), "rm: can't stat %q: %v\n", file, statErr)
				anyFailed = true
			case stat.IsDir() && !*recursive:
				fmt.Fprintf(proc.Stderr(), "rm: can't remove %q: is a directory\n", file)
				anyFailed = true
			case stat.IsDir():
				if err := proc.Fs().RemoveAll(path); err != nil {
					fmt.Fprintf(proc.Stderr(), "rm: can't remove %q: %v\n", file, err)
					anyFailed = true
				}
			default:
				if err := proc.Fs().Remove(path); err != nil {
					fmt.Fprintf(proc.Stderr(), "rm: can't remove %q: %v\n", file, err)
					anyFailed = true
				}
			}
		}

		if anyFailed {
			return 1
		}
		return 0
	})
}

var _ vos.ProcessFunc = Rm

func init() {
	addCmd(Rm, "rm")
}
