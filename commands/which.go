package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/josephlewis42/ezh/core/vos"
)

// lookPath searches the directories of $PATH for an executable file, the
// session's PATH wins over the one ezh was started with.
func lookPath(proc *vos.Process, name string) (string, bool) {
	if strings.Contains(name, "/") {
		return proc.Abs(name), isExecutable(proc, proc.Abs(name))
	}

	path, ok, _ := proc.Env().LookupEnv("PATH")
	if !ok {
		path = os.Getenv("PATH")
	}
	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(proc.Abs(dir), name)
		if isExecutable(proc, candidate) {
			return candidate, true
		}
	}
	return "", false
}

func isExecutable(proc *vos.Process, path string) bool {
	stat, err := proc.Fs().Stat(path)
	return err == nil && !stat.IsDir() && stat.Mode().Perm()&0111 != 0
}

// Which implements the UNIX which command, builtins are reported as such.
func Which(proc *vos.Process) int {
	cmd := &SimpleCommand{
		Use:   "which [COMMAND...]",
		Short: "Locate a command.",
	}

	return cmd.Run(proc, func() int {
		var found []string
		anyMissing := false
		for _, name := range cmd.Args() {
			if BuiltinProcessResolver(name) != nil {
				found = append(found, name+": shell builtin")
				continue
			}

			res, ok := lookPath(proc, name)
			if !ok {
				fmt.Fprintf(proc.Stderr(), "which: no %s in PATH\n", name)
				anyMissing = true
				continue
			}
			found = append(found, res)
		}
		fmt.Fprint(proc.Stdout(), strings.Join(found, "\n"))

		if anyMissing {
			return 1
		}
		return 0
	})
}

var _ vos.ProcessFunc = Which

func init() {
	addCmd(Which, "which")
}
