package commands

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/josephlewis42/ezh/core/vos"
	"github.com/spf13/afero"
)

// Mkdir implements a POSIX mkdir command.
//
// https://pubs.opengroup.org/onlinepubs/9699919799.2018edition/utilities/mkdir.html
func Mkdir(proc *vos.Process) int {
	cmd := &SimpleCommand{
		Use:          "mkdir [-pv] [-m MODE] DIRECTORY...",
		Short:        "Create directories if they don't exist.",
		Interspersed: true,
	}

	makeParents := cmd.Flags().BoolLong("parents", 'p', "make parents if needed")
	verbose := cmd.Flags().BoolLong("verbose", 'v', "print line for every created directory")
	modeExpr := cmd.Flags().StringLong("mode", 'm', "", "permissions of created directories, like chmod", "MODE")

	return cmd.Run(proc, func() int {
		directories := cmd.Args()
		if len(directories) == 0 {
			fmt.Fprintln(proc.Stderr(), "mkdir: missing operand")
			return 1
		}

		mode := fs.FileMode(0755)
		if *modeExpr != "" {
			var err error
			if mode, err = ChmodApplyMode(*modeExpr, 0777); err != nil {
				fmt.Fprintf(proc.Stderr(), "mkdir: invalid mode %q: %v\n", *modeExpr, err)
				return 1
			}
		}

		anyFailed := false
		var created []string
		for _, dir := range directories {
			target := proc.Abs(dir)

			var err error
			if *makeParents {
				if isDir, _ := afero.IsDir(proc.Fs(), target); isDir {
					continue
				}
				// Parents get the default mode, only the leaf gets MODE.
				err = proc.Fs().MkdirAll(path.Dir(target), 0755)
			}
			if err == nil {
				err = proc.Fs().Mkdir(target, mode)
			}

			switch {
			case err != nil:
				fmt.Fprintf(proc.Stderr(), "mkdir: cannot create directory %q: %s\n", dir, err)
				anyFailed = true

			case *verbose:
				created = append(created, fmt.Sprintf("mkdir: created directory %q", dir))
			}
		}
		fmt.Fprint(proc.Stdout(), strings.Join(created, "\n"))

		if anyFailed {
			return 1
		}
		return 0
	})
}

var _ vos.ProcessFunc = Mkdir

func init() {
	addCmd(Mkdir, "mkdir")
}
