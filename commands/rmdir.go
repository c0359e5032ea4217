package commands

import (
	"fmt"
	"path"
	"strings"

	"github.com/josephlewis42/ezh/core/vos"
	"github.com/spf13/afero"
)

// Rmdir implements a POSIX rmdir command.
func Rmdir(proc *vos.Process) int {
	cmd := &SimpleCommand{
		Use:          "rmdir [OPTION...] DIRECTORY...",
		Short:        "Remove empty directories.",
		Interspersed: true,
	}

	parents := cmd.Flags().BoolLong("parents", 'p', "remove DIRECTORY and its ancestors")
	verbose := cmd.Flags().BoolLong("verbose", 'v', "print line for every deleted directory")

	return cmd.Run(proc, func() int {
		directories := cmd.Args()
		if len(directories) == 0 {
			fmt.Fprintln(proc.Stderr(), "rmdir: missing operand")
			return 1
		}

		anyFailed := false
		var removed []string
		for _, dir := range directories {
			// Deepest first: a/b/c, a/b, a
			steps := []string{dir}
			if *parents {
				for parent := path.Dir(strings.TrimSuffix(dir, "/")); parent != "." && parent != "/"; parent = path.Dir(parent) {
					steps = append(steps, parent)
				}
			}

			for _, step := range steps {
				target := proc.Abs(step)
				empty, err := afero.IsEmpty(proc.Fs(), target)
				if err != nil {
					fmt.Fprintf(proc.Stderr(), "rmdir: cannot read directory %q: %s\n", step, err)
					anyFailed = true
					break
				}
				if isDir, _ := afero.IsDir(proc.Fs(), target); !isDir {
					fmt.Fprintf(proc.Stderr(), "rmdir: %q: not a directory\n", step)
					anyFailed = true
					break
				}
				if !empty {
					fmt.Fprintf(proc.Stderr(), "rmdir: directory not empty %q\n", step)
					anyFailed = true
					break
				}

				if err := proc.Fs().Remove(target); err != nil {
					fmt.Fprintf(proc.Stderr(), "rmdir: cannot remove directory %q: %s\n", step, err)
					anyFailed = true
					break
				}
				if *verbose {
					removed = append(removed, fmt.Sprintf("rmdir: removed directory %q", step))
				}
			}
		}
		fmt.Fprint(proc.Stdout(), strings.Join(removed, "\n"))

		if anyFailed {
			return 1
		}
		return 0
	})
}

var _ vos.ProcessFunc = Rmdir

func init() {
	addCmd(Rmdir, "rmdir")
}
